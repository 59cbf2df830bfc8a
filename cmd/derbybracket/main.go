package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/abrezinsky/derbybracket/internal/app"
	"github.com/abrezinsky/derbybracket/internal/auth"
	"github.com/abrezinsky/derbybracket/internal/config"
	"github.com/abrezinsky/derbybracket/internal/logger"
	"github.com/abrezinsky/derbybracket/web"
)

// ANSI escape codes
const (
	moveUp = "\033[%dA"
	reset  = "\033[0m"
	yellow = "\033[33m"
	red    = "\033[31m"
	green  = "\033[32m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

var (
	version = "dev"
)

var logo = []string{
	"   ____            _          ____                 _        _   ",
	"  |  _ \\  ___ _ __| |__  _   | __ ) _ __ __ _  ___| | _____| |_ ",
	"  | | | |/ _ \\ '__| '_ \\| | ||  _ \\| '__/ _` |/ __| |/ / _ \\ __|",
	"  | |_| |  __/ |  | |_) | |_|| |_) | | | (_| | (__|   <  __/ |_ ",
	"  |____/ \\___|_|  |_.__/ \\__,|____/|_|  \\__,_|\\___|_|\\_\\___|\\__|",
	"                         |___/                                  ",
}

// bracketFrames draws a four team bracket filling in one round at a time
var bracketFrames = [][]string{
	{
		"  Seed 1 ──┐                        ",
		"           │                        ",
		"  Seed 4 ──┘                        ",
		"                                    ",
		"  Seed 2 ──┐                        ",
		"           │                        ",
		"  Seed 3 ──┘                        ",
	},
	{
		"  Seed 1 ──┐                        ",
		"           ├── Seed 1 ──┐           ",
		"  Seed 4 ──┘            │           ",
		"                        │           ",
		"  Seed 2 ──┐            │           ",
		"           ├── Seed 3 ──┘           ",
		"  Seed 3 ──┘                        ",
	},
	{
		"  Seed 1 ──┐                        ",
		"           ├── Seed 1 ──┐           ",
		"  Seed 4 ──┘            │           ",
		"                        ├── Seed 1 🏆",
		"  Seed 2 ──┐            │           ",
		"           ├── Seed 3 ──┘           ",
		"  Seed 3 ──┘                        ",
	},
}

// showStartupBanner prints the logo and, unless skipped, fills in a small
// bracket round by round
func showStartupBanner(skipAnimation bool) {
	width := 0
	for _, line := range logo {
		if len(line) > width {
			width = len(line)
		}
	}
	border := strings.Repeat("═", width+2)

	fmt.Printf("\n  %s╔%s╗%s\n", cyan, border, reset)
	for _, line := range logo {
		fmt.Printf("  %s║ %s%-*s %s║%s\n", cyan, yellow, width, line, cyan, reset)
	}
	fmt.Printf("  %s╚%s╝%s\n\n", cyan, border, reset)

	if skipAnimation {
		return
	}

	for i, frame := range bracketFrames {
		if i > 0 {
			fmt.Printf(moveUp, len(frame))
		}
		for _, line := range frame {
			fmt.Printf("  %s%s%s\n", green, line, reset)
		}
		time.Sleep(300 * time.Millisecond)
	}
	fmt.Println()
}

// cycleLogLevel cycles through debug -> info -> warn -> error
func cycleLogLevel(appLog *logger.SlogLogger) string {
	var next string

	switch appLog.GetLevel().String() {
	case "DEBUG":
		next = "info"
	case "INFO":
		next = "warn"
	case "WARN":
		next = "error"
	case "ERROR":
		next = "debug"
	default:
		next = "info"
	}

	appLog.SetLevel(logger.ParseLevel(next))
	return next
}

// printKeyboardHelp displays all available keyboard shortcuts
func printKeyboardHelp() {
	fmt.Printf("\n%s%s  Keyboard Shortcuts:%s\n", bold, green, reset)
	fmt.Printf("    %sa%s      - Open admin page in browser\n", cyan, reset)
	fmt.Printf("    %sb%s      - Open public brackets in browser\n", cyan, reset)
	fmt.Printf("    %sh%s      - Toggle HTTP request logging\n", cyan, reset)
	fmt.Printf("    %sl%s      - Cycle log level (debug → info → warn → error)\n", cyan, reset)
	fmt.Printf("    %sq%s      - Quit server\n", cyan, reset)
	fmt.Printf("    %s?%s      - Show this help\n\n", cyan, reset)
}

func main() {
	configPath := flag.String("config", "derbybracket.yaml", "YAML config file (optional)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	adminPw := flag.String("adminpw", "", "Admin password (auto-generated if not set)")
	logLevel := flag.String("loglevel", "", "Log level (debug, info, warn, error)")
	logFormat := flag.String("logformat", "", "Log format (text, json)")
	noAnimate := flag.Bool("noanimate", false, "Show logo only, skip bracket animation")
	noKeyboard := flag.Bool("nokeyboard", false, "Disable keyboard shortcuts")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `DerbyBracket - Elimination Bracket Server

Usage:
  derbybracket [options]

Options:
  -config str    YAML config file (default "derbybracket.yaml", skipped if missing)
  -port int      HTTP server port (default 8081)
  -db string     SQLite database path (default "bracket.db")
  -adminpw str   Admin password (auto-generated if not set)
  -loglevel str  Log level: debug, info, warn, error (default "info")
  -logformat str Log format: text, json (default "text")
  -noanimate     Show logo only, skip bracket animation
  -nokeyboard    Disable keyboard shortcuts
  -version       Show version and exit
  -help          Show this help message

Environment (also read from .env):
  PORT, BASE_URL, DATABASE_PATH, LOG_LEVEL, LOG_FORMAT, ADMIN_PASSWORD,
  TIE_BREAKER, PRESERVE_SCORES, CREATE_ROUNDS, STOP_AT_ROUND, BYE_LABEL,
  BYE_CLASS, SHOW_BYE_GAMES, ROUND_LABELS, CHAMPION_MARKER, WEBHOOK_URL,
  WEBHOOK_TIMEOUT

Keyboard Shortcuts (when enabled):
  a              Open admin page in browser
  b              Open public brackets in browser
  h              Toggle HTTP request logging
  l              Cycle log level (debug → info → warn → error)
  q              Quit server
  ?              Show keyboard help

Examples:
  derbybracket                          # Run on port 8081 with bracket.db
  derbybracket -port 8080               # Run on port 8080
  derbybracket -config /etc/derby.yaml  # Use a config file
  derbybracket -adminpw secret123       # Use specific admin password
  derbybracket -logformat json -nokeyboard

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("derbybracket %s\n", version)
		os.Exit(0)
	}

	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("Failed to read .env:", err)
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	applyFlags(cfg, *port, *dbPath, *adminPw, *logLevel, *logFormat)
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// Show startup animation or just logo
	showStartupBanner(*noAnimate)

	// Setup admin authentication
	password := cfg.Admin.Password
	if password == "" {
		password = auth.GeneratePassword()
	}
	adminAuth := auth.New(password)

	appLog := logger.NewWithOptions(cfg.LoggerOptions())

	a, err := app.New(appLog, cfg, web.Templates(), web.Static(), adminAuth)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	appLog.Info("Admin password", "password", password)

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run(addr)
	}()

	// Wait a moment for server to start
	time.Sleep(100 * time.Millisecond)

	// Print keyboard shortcuts and start listener (unless disabled)
	if !*noKeyboard {
		printKeyboardHelp()
		keys := newKeyActions(fmt.Sprintf("http://localhost:%d", cfg.Server.Port), appLog, os.Stdout)
		go listenForKeyboard(keys)
	} else {
		fmt.Printf("\n%sKeyboard shortcuts disabled (use -nokeyboard=false to enable)%s\n\n", yellow, reset)
	}

	// Wait for server error or signal
	if err := <-serverErr; err != nil {
		log.Fatal(err)
	}
}

// applyFlags lets explicit command-line values win over file and environment
func applyFlags(cfg *config.Config, port int, dbPath, adminPw, logLevel, logFormat string) {
	if port != 0 {
		cfg.Server.Port = port
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if adminPw != "" {
		cfg.Admin.Password = adminPw
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
}
