package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/bennorichters/notes-rag/internal/llm"
)

// Remote client: retrieves chunks from a running API server, then
// generates the answer with a locally reachable LLM.

type queryRequest struct {
	Question string `json:"question"`
	NResults int    `json:"n_results"`
}

type queryItem struct {
	Chunk  string   `json:"chunk"`
	Source string   `json:"source"`
	Tags   []string `json:"tags"`
}

// aggregateResponse is the older response shape, chunks aggregated into
// parallel arrays.
type aggregateResponse struct {
	Chunks []string `json:"chunks"`
}

func main() {
	_ = godotenv.Load()

	apiURL := os.Getenv("API_URL")
	apiKey := os.Getenv("API_KEY")
	if apiURL == "" {
		fmt.Fprintln(os.Stderr, "Error: API_URL environment variable not set")
		fmt.Fprintln(os.Stderr, "Example: export API_URL=https://notes-rag.yourdomain.com")
		os.Exit(1)
	}
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "Error: API_KEY environment variable not set")
		os.Exit(1)
	}
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s \"Your question here\"\n", os.Args[0])
		os.Exit(1)
	}
	question := strings.Join(os.Args[1:], " ")

	fmt.Printf("Question: %s\n\n", question)
	fmt.Println("Querying RAG...")

	chunks, err := queryChunks(apiURL, apiKey, question, 3)
	if err != nil {
		log.Fatalf("Error querying API: %v", err)
	}
	if len(chunks) == 0 {
		fmt.Println("\nNo relevant notes found.")
		return
	}

	notesContext := strings.Join(chunks, "\n\n---\n\n")
	prompt := fmt.Sprintf(`Based on the following notes, answer the question.

Notes:
%s

Question: %s`, notesContext, question)

	answer, err := completeLocally(prompt)
	if err != nil {
		log.Fatalf("Error calling LLM: %v", err)
	}
	fmt.Printf("\nAnswer:\n%s\n", answer)
}

// queryChunks calls POST /query and extracts the chunk texts, supporting
// both the per-item and the aggregated response shapes.
func queryChunks(apiURL, apiKey, question string, n int) ([]string, error) {
	payload, err := json.Marshal(queryRequest{Question: question, NResults: n})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, strings.TrimSuffix(apiURL, "/")+"/query", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", apiKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var items []queryItem
	if err := json.Unmarshal(body, &items); err == nil {
		chunks := make([]string, 0, len(items))
		for _, item := range items {
			if item.Chunk != "" {
				chunks = append(chunks, item.Chunk)
			}
		}
		return chunks, nil
	}

	var aggregated aggregateResponse
	if err := json.Unmarshal(body, &aggregated); err != nil {
		return nil, fmt.Errorf("unrecognized response shape: %w", err)
	}
	return aggregated.Chunks, nil
}

func completeLocally(prompt string) (string, error) {
	baseURL := os.Getenv("LLM_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "llama3.2"
	}
	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	return llm.NewClient(baseURL, apiKey, model).Chat(ctx, prompt)
}
