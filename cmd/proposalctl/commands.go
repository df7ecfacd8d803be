package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
)

func runStore(apiURL, path string, out io.Writer) error {
	var payload []byte
	var err error
	if path == "-" {
		payload, err = io.ReadAll(os.Stdin)
	} else {
		payload, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	// sanity-check the payload before shipping it
	var p map[string]interface{}
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("invalid proposal JSON: %w", err)
	}
	return postJSON(apiURL+"/api/store_proposal", payload, out)
}

func runGet(apiURL, id string, out io.Writer) error {
	if _, err := strconv.Atoi(id); err != nil {
		return fmt.Errorf("proposal id must be an integer")
	}
	resp, err := http.Get(apiURL + "/api/get_proposal/" + id)
	if err != nil {
		return err
	}
	return copyResponse(resp, out)
}

func runSearch(apiURL, query string, out io.Writer) error {
	if query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	resp, err := http.Get(apiURL + "/api/search_proposals/" + url.PathEscape(query))
	if err != nil {
		return err
	}
	return copyResponse(resp, out)
}

func runAsk(apiURL, query string, out io.Writer) error {
	if query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	body, _ := json.Marshal(map[string]string{"query": query})
	return postJSON(apiURL+"/api/ask_proposal", body, out)
}

func runSummarize(apiURL, text string, out io.Writer) error {
	if text == "" {
		return fmt.Errorf("text cannot be empty")
	}
	body, _ := json.Marshal(map[string]string{"text": text})
	return postJSON(apiURL+"/api/generate_summary", body, out)
}

func runVote(apiURL, id string, likes, dislikes int, out io.Writer) error {
	pid, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("proposal id must be an integer")
	}
	body, _ := json.Marshal(map[string]int{
		"proposalId": pid,
		"likes":      likes,
		"dislikes":   dislikes,
	})
	return postJSON(apiURL+"/api/update_vote", body, out)
}

func postJSON(endpoint string, body []byte, out io.Writer) error {
	resp, err := http.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	return copyResponse(resp, out)
}

func copyResponse(resp *http.Response, out io.Writer) error {
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	_, err := io.Copy(out, resp.Body)
	return err
}
