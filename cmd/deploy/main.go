// Command deploy prepares a dealership configuration and registers the
// voice agent with the platform: it substitutes {{VAR}} placeholders in
// the config JSONs, writes the processed copies under a deployment id,
// calls the agent registration API, and records a deployment report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/voiceagent"
)

var requiredEnv = []string{
	"DEALER_NAME", "DEALER_ADDRESS", "DEALER_PHONE",
	"MAIN_NUMBER", "SALES_NUMBER", "SERVICE_NUMBER", "PARTS_NUMBER",
	"ELEVENLABS_API_KEY", "ELEVENLABS_VOICE_ID", "WEBHOOK_BASE_URL",
	"CRM_TYPE", "ADF_INBOX_EMAIL",
}

var configFiles = []string{"dealer-logic-config.json", "agents.json", "tools.json", "templates.json"}

var placeholderPattern = regexp.MustCompile(`\{\{([A-Z_]+)\}\}`)

type report struct {
	DeploymentID string    `json:"deployment_id"`
	Timestamp    time.Time `json:"timestamp"`
	DealerName   string    `json:"dealer_name"`
	AgentID      string    `json:"agent_id,omitempty"`
	Warnings     []string  `json:"warnings"`
	Error        string    `json:"error,omitempty"`
	Status       string    `json:"status"`
}

func main() {
	configDir := flag.String("config", "config", "directory holding the dealership config JSONs")
	reportDir := flag.String("reports", "reports", "directory deployment reports are written to")
	skipRegister := flag.Bool("skip-register", false, "process configs without calling the platform API")
	flag.Parse()

	_ = godotenv.Load()

	deploymentID := fmt.Sprintf("dl-deploy-%d", time.Now().Unix())
	fmt.Println("Dealer Logic pilot deployment")
	fmt.Printf("deployment id: %s\n\n", deploymentID)

	rep := report{
		DeploymentID: deploymentID,
		Timestamp:    time.Now().UTC(),
		DealerName:   os.Getenv("DEALER_NAME"),
		Status:       "success",
	}

	if err := run(*configDir, *skipRegister, deploymentID, &rep); err != nil {
		fmt.Fprintf(os.Stderr, "\ndeployment failed: %v\n", err)
		rep.Status = "failed"
		rep.Error = err.Error()
		writeReport(*reportDir, deploymentID+"-error.json", rep)
		os.Exit(1)
	}

	writeReport(*reportDir, deploymentID+".json", rep)
	fmt.Println("\ndeployment completed")
	if len(rep.Warnings) > 0 {
		fmt.Println("warnings:")
		for _, w := range rep.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
}

func run(configDir string, skipRegister bool, deploymentID string, rep *report) error {
	fmt.Println("step 1: validating environment")
	var missing []string
	for _, key := range requiredEnv {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	fmt.Printf("  all %d required variables present\n", len(requiredEnv))

	fmt.Println("step 2: processing configurations")
	processedDir := filepath.Join(configDir, "processed", deploymentID)
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return err
	}
	for _, file := range configFiles {
		raw, err := os.ReadFile(filepath.Join(configDir, file))
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		processed := substitutePlaceholders(string(raw), rep)

		// Round-trip to catch substitution producing invalid JSON.
		var parsed any
		if err := json.Unmarshal([]byte(processed), &parsed); err != nil {
			return fmt.Errorf("%s is not valid JSON after substitution: %w", file, err)
		}
		pretty, err := json.MarshalIndent(parsed, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(processedDir, file), pretty, 0o644); err != nil {
			return err
		}
		fmt.Printf("  processed %s\n", file)
	}
	fmt.Printf("  saved processed configs to %s\n", processedDir)

	fmt.Println("step 3: registering voice agent")
	if skipRegister {
		fmt.Println("  skipped (-skip-register)")
		return nil
	}

	client := voiceagent.NewClient(
		os.Getenv("ELEVENLABS_API_KEY"),
		os.Getenv("ELEVENLABS_AGENT_ID"),
		os.Getenv("WEBHOOK_BASE_URL")+"/api/webhooks/elevenlabs",
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	agent, err := client.SetupAgent(ctx, os.Getenv("DEALER_NAME"))
	if err != nil {
		return fmt.Errorf("agent registration: %w", err)
	}
	rep.AgentID = agent.AgentID
	fmt.Printf("  registered agent %s with tool and post-call webhooks\n", agent.AgentID)
	return nil
}

// substitutePlaceholders replaces {{VAR}} tokens with env values.
// Unresolved tokens are kept verbatim and reported as warnings, so a
// partially-configured file deploys loudly instead of silently empty.
func substitutePlaceholders(content string, rep *report) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		if v := os.Getenv(key); v != "" {
			return v
		}
		rep.Warnings = append(rep.Warnings, "missing optional variable: "+key)
		return match
	})
}

func writeReport(dir, name string, rep report) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "could not create report dir: %v\n", err)
		return
	}
	raw, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not encode report: %v\n", err)
		return
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "could not write report: %v\n", err)
		return
	}
	fmt.Printf("\nreport saved to %s\n", path)
}
