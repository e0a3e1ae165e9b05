package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bmitrack/internal/cli"
	"bmitrack/internal/config"
	"bmitrack/internal/db"
	"bmitrack/internal/logger"
	"bmitrack/internal/monitor"
	"bmitrack/internal/repo"
	"bmitrack/internal/service"
	"bmitrack/internal/ui"
)

func main() {
	var (
		cfgPath    = flag.String("config", "config/config.yaml", "Path to configuration file")
		cliMode    = flag.Bool("cli", false, "Run the plain command-line calculator instead of the TUI")
		user       = flag.String("user", "", "Username to record measurements under")
		exportUser = flag.String("export", "", "Export a user's history as JSON and exit")
		outPath    = flag.String("out", "", "Write exported JSON to this file instead of stdout")
	)
	flag.Parse()

	cfgVals := config.Init(*cfgPath)
	_ = logger.Init(cfgVals.LogPath)

	gdb, err := db.Open(db.Config{
		Driver:   cfgVals.DB.Driver,
		Path:     cfgVals.DB.Path,
		Host:     cfgVals.DB.Host,
		Port:     cfgVals.DB.Port,
		User:     cfgVals.DB.User,
		Password: cfgVals.DB.Pass,
		DBName:   cfgVals.DB.Name,
	})
	if err != nil {
		logger.Error("Cannot open record store:", err)
		fmt.Fprintln(os.Stderr, "Cannot open record store:", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Error("Cannot migrate record store:", err)
		fmt.Fprintln(os.Stderr, "Cannot migrate record store:", err)
		os.Exit(1)
	}

	svc := service.NewRecordService(repo.NewGORMRecordRepository(gdb))

	username := *user
	if username == "" {
		username = cfgVals.DefaultUser
	}

	if *exportUser != "" {
		if err := runExport(svc, *exportUser, *outPath); err != nil {
			logger.Error("Export failed:", err)
			fmt.Fprintln(os.Stderr, "Export failed:", err)
			os.Exit(1)
		}
		return
	}

	if *cliMode {
		loop := cli.New(svc, os.Stdin, os.Stdout)
		loop.SetUsername(username)
		if err := loop.Run(); err != nil {
			logger.Error("CLI session failed:", err)
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	// The watcher picks up saves made by other processes sharing the
	// sqlite file. MySQL setups just refresh manually.
	var watcher *monitor.StoreWatcher
	if cfgVals.DB.Driver == "" || cfgVals.DB.Driver == db.DriverSQLite {
		watcher, err = monitor.NewStoreWatcher(cfgVals.DB.Path)
		if err != nil {
			logger.Warnf("Store watcher unavailable: %v", err)
			watcher = nil
		}
	}

	root := ui.NewRootModel(svc, watcher)
	if username != "" {
		root.Calculator.SetUsername(username)
	}

	logger.Infof("Starting TUI with %s store", storeLabel(cfgVals.DB.Driver))
	if _, err := tea.NewProgram(root, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("TUI crashed:", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runExport(svc *service.RecordService, username, outPath string) error {
	if outPath == "" {
		return svc.ExportJSON(username, os.Stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := svc.ExportJSON(username, f); err != nil {
		return err
	}
	logger.Infof("Exported history for %s to %s", username, outPath)
	return nil
}

func storeLabel(driver string) string {
	if driver == "" {
		return db.DriverSQLite
	}
	return driver
}
