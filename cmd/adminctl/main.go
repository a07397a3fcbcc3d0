// adminctl is a small terminal client for the admin API. It keeps the admin
// token in a local file and relies on the session manager to refuse expired
// or mismatched tokens before any request leaves the machine.
//
// Usage:
//
//	adminctl [-server URL] login -email admin@fireguard.com -password ...
//	adminctl [-server URL] whoami
//	adminctl [-server URL] enquiries [-city X] [-start YYYY-MM-DD] [-end YYYY-MM-DD]
//	adminctl [-server URL] report [-month YYYY-MM]
//	adminctl [-server URL] logout
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"fireguard/internal/session"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "backend base URL")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: adminctl [-server URL] login|whoami|enquiries|report|logout")
		os.Exit(2)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot resolve home directory: %v\n", err)
		os.Exit(1)
	}
	manager := session.NewManager(session.KindAdmin,
		session.NewFileStore(filepath.Join(home, ".fireguard", "admin_token")))
	defer manager.Close()

	cli := &client{
		baseURL: *serverURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		session: manager,
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]
	if err := cli.run(command, args); err != nil {
		fmt.Fprintf(os.Stderr, "adminctl: %v\n", err)
		os.Exit(1)
	}
}

type client struct {
	baseURL string
	http    *http.Client
	session *session.Manager
}

func (c *client) run(command string, args []string) error {
	switch command {
	case "login":
		return c.login(args)
	case "logout":
		return c.session.Logout()
	case "whoami":
		return c.whoami()
	case "enquiries":
		return c.enquiries(args)
	case "report":
		return c.report(args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (c *client) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	body, err := json.Marshal(map[string]string{"email": *email, "password": *password})
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("unexpected response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("login failed: %s", result.Error)
	}

	payload, err := c.session.Begin(result.Token)
	if err != nil {
		return fmt.Errorf("server issued an unusable token: %w", err)
	}
	fmt.Printf("logged in as %s until %s\n",
		payload.Email, time.Unix(payload.ExpiresAt, 0).Format(time.RFC1123))
	return nil
}

func (c *client) whoami() error {
	payload, err := c.restore()
	if err != nil {
		return err
	}
	fmt.Printf("%s (role %s), session expires %s\n",
		payload.Email, payload.Role, time.Unix(payload.ExpiresAt, 0).Format(time.RFC1123))
	return nil
}

func (c *client) enquiries(args []string) error {
	fs := flag.NewFlagSet("enquiries", flag.ExitOnError)
	city := fs.String("city", "", "filter by city substring")
	start := fs.String("start", "", "start date YYYY-MM-DD")
	end := fs.String("end", "", "end date YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query := url.Values{}
	if *city != "" {
		query.Set("city", *city)
	}
	if *start != "" {
		query.Set("startDate", *start)
	}
	if *end != "" {
		query.Set("endDate", *end)
	}

	data, err := c.get("/api/admin/enquiries", query)
	if err != nil {
		return err
	}

	var result struct {
		Count     int `json:"count"`
		Enquiries []struct {
			ID        string `json:"enquiry_id"`
			Timestamp string `json:"timestamp"`
			Name      string `json:"name"`
			City      string `json:"city"`
			Interest  string `json:"product_interest"`
		} `json:"enquiries"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}

	fmt.Printf("%d enquiries\n", result.Count)
	for _, e := range result.Enquiries {
		fmt.Printf("  %s  %-22s %-15s %s\n", e.ID, e.Timestamp, e.City, e.Interest)
	}
	return nil
}

func (c *client) report(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	month := fs.String("month", "", "month YYYY-MM (default: current)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query := url.Values{}
	if *month != "" {
		query.Set("month", *month)
	}

	data, err := c.get("/api/admin/reports/monthly", query)
	if err != nil {
		return err
	}

	var result struct {
		Report struct {
			Month      string `json:"month"`
			Total      int    `json:"total_enquiries"`
			TopProduct string `json:"top_product_interest"`
			TopCity    string `json:"top_city"`
			DailyTrend []struct {
				Date  string `json:"date"`
				Count int    `json:"count"`
			} `json:"daily_trend"`
		} `json:"report"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}

	r := result.Report
	fmt.Printf("%s: %d enquiries, top product %q, top city %q\n",
		r.Month, r.Total, r.TopProduct, r.TopCity)
	for _, d := range r.DailyTrend {
		fmt.Printf("  %s  %d\n", d.Date, d.Count)
	}
	return nil
}

// restore loads the stored session and refuses to proceed when it is
// missing, expired, or not an admin token.
func (c *client) restore() (*session.Payload, error) {
	payload, err := c.session.Restore()
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, fmt.Errorf("not logged in (or session expired); run adminctl login")
	}
	return payload, nil
}

// get performs an authenticated GET and returns the response body.
func (c *client) get(path string, query url.Values) ([]byte, error) {
	if _, err := c.restore(); err != nil {
		return nil, err
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.session.Token())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		// Server-side verification is authoritative; drop the local session.
		_ = c.session.Logout()
		return nil, fmt.Errorf("session rejected by server; run adminctl login")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, string(body))
	}
	return body, nil
}
