// Command console is a small operator client for the host API: it lists
// agents and tools, shows a date's court schedule as a table, books slots
// and relays tasks to participant agents.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"courtside/toolset"
)

type Config struct {
	HostAPIURL string `env:"HOST_API_URL,default=http://localhost:8080"`
}

func main() {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	client := &client{baseURL: config.HostAPIURL, http: &http.Client{Timeout: 30 * time.Second}}

	var err error
	switch os.Args[1] {
	case "agents":
		err = client.agents()
	case "tools":
		err = client.tools()
	case "availability":
		err = client.availability(os.Args[2:])
	case "book":
		err = client.book(os.Args[2:])
	case "send":
		err = client.send(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: console <command> [flags]

Commands:
  agents                          list participant agents known to the host
  tools                           list the host's callable tools
  availability -date DATE         show the court schedule for a date
  book -date DATE -start HH:MM -end HH:MM [-name NAME]
  send -agent NAME -task TEXT     relay a task to a participant agent`)
}

type client struct {
	baseURL string
	http    *http.Client
}

func (c *client) agents() error {
	var body struct {
		Items []map[string]any `json:"items"`
	}
	if err := c.get("/api/v1/agents", &body); err != nil {
		return err
	}
	if len(body.Items) == 0 {
		color.Yellow.Println("No participant agents are connected.")
		return nil
	}

	table := newTable([]string{"Name", "Description", "URL", "Version"})
	for _, item := range body.Items {
		table.Append([]string{
			str(item["name"]), str(item["description"]), str(item["url"]), str(item["version"]),
		})
	}
	table.Render()
	return nil
}

func (c *client) tools() error {
	var body struct {
		Items []map[string]any `json:"items"`
	}
	if err := c.get("/api/v1/tools", &body); err != nil {
		return err
	}

	table := newTable([]string{"Tool", "Description"})
	for _, item := range body.Items {
		table.Append([]string{str(item["name"]), str(item["description"])})
	}
	table.Render()
	return nil
}

func (c *client) availability(args []string) error {
	flags := flag.NewFlagSet("availability", flag.ExitOnError)
	date := flags.String("date", "", "Date to inspect (YYYY-MM-DD)")
	_ = flags.Parse(args)

	result, err := c.invoke(toolset.ToolAvailability, map[string]any{"date": *date})
	if err != nil {
		return err
	}
	if str(result["status"]) != toolset.StatusSuccess {
		color.Red.Println(str(result["message"]))
		return nil
	}

	color.Green.Println(str(result["message"]))
	table := newTable([]string{"Slot", "State", "Detail"})
	for _, row := range scheduleRows(result) {
		table.Append(row)
	}
	table.Render()
	return nil
}

func (c *client) book(args []string) error {
	flags := flag.NewFlagSet("book", flag.ExitOnError)
	date := flags.String("date", "", "Date to book (YYYY-MM-DD)")
	start := flags.String("start", "", "Start time (HH:MM)")
	end := flags.String("end", "", "End time (HH:MM)")
	name := flags.String("name", "", "Reservation name")
	_ = flags.Parse(args)

	result, err := c.invoke(toolset.ToolBookCourt, map[string]any{
		"date":             *date,
		"start_time":       *start,
		"end_time":         *end,
		"reservation_name": *name,
	})
	if err != nil {
		return err
	}
	printStatus(result)
	return nil
}

func (c *client) send(args []string) error {
	flags := flag.NewFlagSet("send", flag.ExitOnError)
	agent := flags.String("agent", "", "Participant agent name")
	task := flags.String("task", "", "Task text to relay")
	_ = flags.Parse(args)

	result, err := c.invoke(toolset.ToolSendMessage, map[string]any{
		"agent_name": *agent,
		"task":       *task,
	})
	if err != nil {
		return err
	}
	if str(result["status"]) != toolset.StatusSuccess {
		color.Red.Println(str(result["message"]))
		return nil
	}

	color.Green.Printf("%s replied:\n", str(result["agent_name"]))
	pretty, err := json.MarshalIndent(result["response"], "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}

func (c *client) get(path string, out any) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("call host API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("host API returned status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) invoke(tool string, toolArgs map[string]any) (map[string]any, error) {
	payload, err := json.Marshal(toolArgs)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Post(c.baseURL+"/api/v1/tools/"+tool, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("call host API: %w", err)
	}
	defer resp.Body.Close()

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode tool result: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("host API rejected the call: %s", str(result["message"]))
	}
	return result, nil
}

// scheduleRows flattens the three slot partitions into sorted table rows.
func scheduleRows(result map[string]any) [][]string {
	var rows [][]string
	if available, ok := result["available_slots"].([]any); ok {
		for _, slot := range available {
			rows = append(rows, []string{str(slot), "available", ""})
		}
	}
	if blocked, ok := result["blocked_slots"].(map[string]any); ok {
		for slot, reason := range blocked {
			rows = append(rows, []string{slot, "blocked", str(reason)})
		}
	}
	if booked, ok := result["booked_slots"].(map[string]any); ok {
		for slot, occupant := range booked {
			rows = append(rows, []string{slot, "booked", str(occupant)})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows
}

func printStatus(result map[string]any) {
	if str(result["status"]) == toolset.StatusSuccess {
		color.Green.Println(str(result["message"]))
		return
	}
	color.Red.Println(str(result["message"]))
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
