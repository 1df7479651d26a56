// Command validate checks a dealership deployment's environment and
// config files before the agent goes live. It prints a pass/fail
// report, writes it as JSON, and exits non-zero on any failure.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/joho/godotenv"
)

var placeholderPattern = regexp.MustCompile(`\{\{([A-Z_]+)\}\}`)

type results struct {
	Passed   []string `json:"passed"`
	Failed   []string `json:"failed"`
	Warnings []string `json:"warnings"`
}

func (r *results) pass(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("  ok   %s\n", msg)
	r.Passed = append(r.Passed, msg)
}

func (r *results) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("  FAIL %s\n", msg)
	r.Failed = append(r.Failed, msg)
}

func (r *results) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("  warn %s\n", msg)
	r.Warnings = append(r.Warnings, msg)
}

func main() {
	configDir := flag.String("config", "config", "directory holding agents.json, tools.json, dealer config")
	reportDir := flag.String("reports", "reports", "directory validation reports are written to")
	flag.Parse()

	_ = godotenv.Load()

	fmt.Println("Dealer Logic configuration validator")
	fmt.Println("====================================")

	var res results
	checkEnvironment(&res)
	checkPhoneNumbers(&res)
	checkAgents(&res, filepath.Join(*configDir, "agents.json"))
	checkTools(&res, filepath.Join(*configDir, "tools.json"))
	checkBusinessHours(&res)
	checkCRM(&res)

	summarize(res)

	path := filepath.Join(*reportDir, fmt.Sprintf("validation-%d.json", time.Now().Unix()))
	if err := writeReport(path, res); err != nil {
		fmt.Fprintf(os.Stderr, "could not write report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nreport saved to %s\n", path)

	if len(res.Failed) > 0 {
		os.Exit(1)
	}
}

// envCategories groups the required variables the way operators think
// about them, so a failed check names the area to fix.
var envCategories = []struct {
	name string
	vars []string
}{
	{"dealer info", []string{"DEALER_NAME", "DEALER_ADDRESS", "DEALER_PHONE", "DEALER_WEBSITE"}},
	{"phone numbers", []string{"MAIN_NUMBER", "SALES_NUMBER", "SERVICE_NUMBER", "PARTS_NUMBER"}},
	{"voice platform", []string{"ELEVENLABS_API_KEY", "ELEVENLABS_VOICE_ID", "WEBHOOK_BASE_URL"}},
	{"crm integration", []string{"CRM_TYPE", "ADF_INBOX_EMAIL"}},
}

func checkEnvironment(res *results) {
	fmt.Println("\n1. Environment variables")
	for _, cat := range envCategories {
		for _, key := range cat.vars {
			if os.Getenv(key) == "" {
				res.fail("%s: %s missing", cat.name, key)
			} else {
				res.pass("%s: %s configured", cat.name, key)
			}
		}
	}
}

var phoneVars = []string{"MAIN_NUMBER", "SALES_NUMBER", "SERVICE_NUMBER", "PARTS_NUMBER"}

func checkPhoneNumbers(res *results) {
	fmt.Println("\n2. Phone numbers")
	tenDigits := regexp.MustCompile(`^\d{10}$`)

	seen := map[string]string{}
	for _, key := range phoneVars {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if !tenDigits.MatchString(v) {
			res.fail("%s: expected 10 digits, got %q", key, v)
			continue
		}
		res.pass("%s: valid format", key)
		if prev, dup := seen[v]; dup {
			res.warn("%s duplicates %s (%s)", key, prev, v)
		}
		seen[v] = key
	}
}

type agentsFile struct {
	Agents []struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		SystemPrompt string   `json:"system_prompt"`
		Tools        []string `json:"tools"`
	} `json:"agents"`
}

var requiredAgents = []string{
	"agent.reception",
	"agent.sales",
	"agent.service",
	"agent.parts",
	"agent.after_hours",
}

func checkAgents(res *results, path string) {
	fmt.Println("\n3. Agent configuration")

	var cfg agentsFile
	if err := readJSON(path, &cfg); err != nil {
		res.fail("agents.json: %v", err)
		return
	}

	byID := map[string]int{}
	for i, a := range cfg.Agents {
		byID[a.ID] = i
	}

	for _, id := range requiredAgents {
		i, ok := byID[id]
		if !ok {
			res.fail("agent %s not found", id)
			continue
		}
		res.pass("agent %s configured", id)
		if cfg.Agents[i].SystemPrompt == "" {
			res.warn("agent %s missing system prompt", id)
		}
		if len(cfg.Agents[i].Tools) == 0 {
			res.warn("agent %s has no tools", id)
		}
	}
	fmt.Printf("  total agents configured: %d\n", len(cfg.Agents))
}

type toolsFile struct {
	Tools []struct {
		Name     string `json:"name"`
		Endpoint struct {
			URL string `json:"url"`
		} `json:"endpoint"`
	} `json:"tools"`
}

var criticalTools = []string{"createLead", "scheduleService", "getInventory", "sendSMS", "transfer"}

func checkTools(res *results, path string) {
	fmt.Println("\n4. Tool endpoints")

	var cfg toolsFile
	if err := readJSON(path, &cfg); err != nil {
		res.fail("tools.json: %v", err)
		return
	}

	byName := map[string]string{}
	for _, t := range cfg.Tools {
		byName[t.Name] = t.Endpoint.URL
	}

	for _, name := range criticalTools {
		url, ok := byName[name]
		if !ok {
			res.fail("tool %s not defined", name)
			continue
		}
		if m := placeholderPattern.FindStringSubmatch(url); m != nil {
			if os.Getenv(m[1]) == "" {
				res.fail("tool %s endpoint missing %s", name, m[1])
				continue
			}
		}
		res.pass("tool %s endpoint configured", name)
	}
}

func checkBusinessHours(res *results) {
	fmt.Println("\n5. Business hours")
	for _, key := range []string{"HOURS_SALES", "HOURS_SERVICE", "HOURS_PARTS"} {
		if v := os.Getenv(key); v == "" {
			res.warn("%s not configured", key)
		} else {
			res.pass("%s: %s", key, v)
		}
	}
}

func checkCRM(res *results) {
	fmt.Println("\n6. CRM integration")
	crmType := os.Getenv("CRM_TYPE")
	adfEmail := os.Getenv("ADF_INBOX_EMAIL")
	if crmType != "" && adfEmail != "" {
		res.pass("CRM %s with ADF to %s", crmType, adfEmail)
	} else {
		res.fail("CRM integration incomplete")
	}
}

func summarize(res results) {
	total := len(res.Passed) + len(res.Failed)
	fmt.Println("\n====================================")
	fmt.Printf("passed %d/%d, failed %d, warnings %d\n",
		len(res.Passed), total, len(res.Failed), len(res.Warnings))

	if len(res.Failed) > 0 {
		fmt.Println("\nfailed checks:")
		for _, f := range res.Failed {
			fmt.Printf("  - %s\n", f)
		}
	}
	if len(res.Warnings) > 0 {
		fmt.Println("\nwarnings:")
		for _, w := range res.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
}

func readJSON(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func writeReport(path string, res results) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
