package cmd

import (
	"log"

	"github.com/spigell/company-scout/internal/logger"
	"github.com/spigell/company-scout/internal/viewer"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve saved reports as browsable HTML",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", ":8080", "address to listen on")
	serveCmd.Flags().StringP("output-dir", "o", "", "directory with saved reports")
}

func serve(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	outputDir := cmd.Flag("output-dir").Value.String()
	if outputDir == "" {
		outputDir = viper.GetString("output-dir")
	}
	addr := cmd.Flag("addr").Value.String()

	server := viewer.NewServer(outputDir, logger)

	if err := server.ListenAndServe(addr); err != nil {
		logger.Fatal("serving reports", zap.Error(err))
	}
}
