package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/finhealth/internal/config"
	"github.com/rgehrsitz/finhealth/internal/tui"
)

func main() {
	// Without a client book the sample clients are shown
	bookPath := ""
	if len(os.Args) > 1 {
		bookPath = os.Args[1]
		if _, err := os.Stat(bookPath); os.IsNotExist(err) {
			fmt.Printf("Error: client book not found: %s\n", bookPath)
			os.Exit(1)
		}
	}

	// The alt screen owns stdout, so engine warnings go to a log file when one is named
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if logPath := os.Getenv("FINHEALTH_LOG_FILE"); logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
		if level, err := logrus.ParseLevel(os.Getenv("FINHEALTH_LOG_LEVEL")); err == nil {
			logger.SetLevel(level)
		}
	} else {
		logger.SetLevel(logrus.PanicLevel)
	}

	parser := config.NewInputParser()
	parser.Logger = logger
	model := tui.NewModel(config.SourceFor(bookPath, parser), logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
