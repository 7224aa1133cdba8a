package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"authboard/config"
	"authboard/database"
	"authboard/logger"
	"authboard/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func initConfig() {
	// Missing .env is fine; real deployments use the environment directly.
	_ = godotenv.Load()
	if err := config.LoadFile(); err != nil {
		log.Fatal("load config file:", err)
	}
}

func initLogging() {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	initLogging()

	if err := database.InitDB(config.GetDBPath()); err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	if err := server.Start(); err != nil {
		logger.Error("start web server:", err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				logger.Error("restart web server:", err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server:", err)
			}
			if err := database.CloseDB(); err != nil {
				logger.Warning("close database:", err)
			}
			logger.CloseLogger()
			return
		}
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "authboard",
		Short: "Small web application with cookie-session authentication",
		Run: func(cmd *cobra.Command, args []string) {
			initConfig()
			runWebServer()
		},
	}

	initDBCmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			if err := database.InitDB(config.GetDBPath()); err != nil {
				return err
			}
			defer database.CloseDB()
			fmt.Println("database initialized at", config.GetDBPath())
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version and exit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetVersion())
		},
	}

	rootCmd.AddCommand(initDBCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
