package main

import (
	"fmt"
	"log"
	"os"

	maestrotop "github.com/Kitware-NetMaestro/maestrotop/internal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maestrotop [backend-url]",
	Short: "Terminal dashboard for NetMaestro simulation trace data",
	Long: `maestrotop loads the ROSS engine, event trace, and model analysis
datasets from a NetMaestro backend and renders them as interactive
terminal charts, with optional HTML export.

Examples:
  maestrotop http://localhost:8000
  maestrotop --backend-url http://netmaestro.lan:8000
  maestrotop --metrics-addr :9091 http://localhost:8000
  MAESTROTOP_BACKEND_URL=http://localhost:8000 maestrotop`,
	Args: cobra.MaximumNArgs(1),
	Run:  run,
}

func init() {
	// Define flags
	rootCmd.Flags().String("backend-url", "", "NetMaestro backend URL")
	rootCmd.Flags().String("metrics-addr", "", "address to expose Prometheus metrics on (disabled when empty)")
	rootCmd.Flags().String("export-path", "maestrotop.html", "path for HTML chart export")
	rootCmd.Flags().Duration("timeout", maestrotop.DefaultTimeout, "backend request timeout")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")

	// Bind flags to Viper keys (note: dashes in flags become underscores in viper)
	viper.BindPFlag("backend_url", rootCmd.Flags().Lookup("backend-url"))
	viper.BindPFlag("metrics_addr", rootCmd.Flags().Lookup("metrics-addr"))
	viper.BindPFlag("export_path", rootCmd.Flags().Lookup("export-path"))
	viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout"))

	// Configure Viper for environment variables
	viper.SetEnvPrefix("maestrotop")
	viper.AutomaticEnv()

	if err := viper.BindEnv("backend_url"); err != nil {
		log.Fatalf("failed to bind backend_url: %v", err)
	}
	if err := viper.BindEnv("metrics_addr"); err != nil {
		log.Fatalf("failed to bind metrics_addr: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) {
	versionFlag, _ := cmd.Flags().GetBool("version")
	if versionFlag {
		fmt.Printf("maestrotop version %s\n", version)
		return
	}

	// Set up logging
	log.SetOutput(os.Stderr)
	log.Printf("Starting maestrotop %s", version)

	// Environment variables take precedence - explicitly override flags if env vars are set
	if envBackendURL := os.Getenv("MAESTROTOP_BACKEND_URL"); envBackendURL != "" {
		viper.Set("backend_url", envBackendURL)
	}

	// Positional argument fills in the backend URL when nothing else set it
	if len(args) == 1 && viper.GetString("backend_url") == "" {
		viper.Set("backend_url", args[0])
	}

	backendURL := viper.GetString("backend_url")
	if backendURL == "" {
		log.Fatalln("Error: backend_url must be set")
	}

	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = maestrotop.DefaultTimeout
	}

	client, err := maestrotop.NewClient(backendURL, timeout)
	if err != nil {
		log.Fatalf("Error creating backend client: %v", err)
	}
	log.Printf("Using NetMaestro backend: %s (timeout %s)", backendURL, timeout)

	var obs *maestrotop.Metrics
	if addr := viper.GetString("metrics_addr"); addr != "" {
		obs = maestrotop.NewMetrics(prometheus.DefaultRegisterer)
		go maestrotop.ServeMetrics(addr)
		log.Printf("Serving metrics on %s", addr)
	}

	cache := maestrotop.NewCache(client, obs)
	defer cache.Dispose()
	reload := maestrotop.NewReloader()

	dashboard := maestrotop.NewDashboard(client, cache, reload, viper.GetString("export_path"))
	if err := maestrotop.RunDashboard(dashboard); err != nil {
		log.Fatalf("Dashboard error: %v", err)
	}
}
