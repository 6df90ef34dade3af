package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// validatePort is the promptui validator for the port question.
func validatePort(input string) error {
	port, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

// validatePath is the promptui validator for the database path question.
func validatePath(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// yesNo asks a yes/no question, preselecting def.
func yesNo(label string, def bool) (bool, error) {
	items := []string{"yes", "no"}
	cursor := 0
	if !def {
		cursor = 1
	}
	p := promptui.Select{Label: label, Items: items, CursorPos: cursor}
	idx, _, err := p.Run()
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to userboard! Let's configure your service.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Listen port.
	portPrompt := promptui.Prompt{
		Label:    "Listen port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port input: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 2. Database file.
	pathPrompt := promptui.Prompt{
		Label:    "SQLite database file",
		Default:  cfg.Database.Path,
		Validate: validatePath,
	}
	dbPath, err := pathPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("database path input: %w", err)
	}
	cfg.Database.Path = strings.TrimSpace(dbPath)

	// 3. HTML views.
	cfg.Views.Enabled, err = yesNo("Serve the htmx HTML views", cfg.Views.Enabled)
	if err != nil {
		return nil, fmt.Errorf("views selection: %w", err)
	}

	// 4. CORS.
	cfg.Server.AllowAllOrigins, err = yesNo("Allow cross-origin requests from any origin", cfg.Server.AllowAllOrigins)
	if err != nil {
		return nil, fmt.Errorf("cors selection: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", path)
	fmt.Println("Start the service with: userboard server")
	return cfg, nil
}
