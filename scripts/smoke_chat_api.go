package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout, model calls can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func sendChat(userID, turnType, text string) {
	payload := map[string]interface{}{
		"user_id":      userID,
		"request_id":   fmt.Sprintf("smoke-%d", time.Now().UnixNano()),
		"request_time": time.Now().Format("2006-01-02 15:04:05"),
		"type":         turnType,
		"body":         text,
	}

	resp, body, err := sendRequest("POST", "/chat/v1/message", payload)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	prettyPrint(parsed)
}

func main() {
	color.Cyan("Starting Chat API Smoke Test\n")
	userID := "smoke-user"

	color.Yellow("\n1. Control command: disableRAG")
	sendChat(userID, "text", "disableRAG")

	color.Yellow("\n2. Plain question (no retrieval)")
	sendChat(userID, "text", "What can you help me with?")

	color.Yellow("\n3. Control command: enableRAG")
	sendChat(userID, "text", "enableRAG")

	color.Yellow("\n4. Ingest a document")
	sendChat(userID, "document", "sample.pdf")

	color.Yellow("\n5. Question answered from the document")
	sendChat(userID, "text", "What is the document about?")

	color.Yellow("\n6. Korean question")
	sendChat(userID, "text", "이 문서의 핵심 내용을 알려줘")

	color.Cyan("\nSmoke test complete")
}
