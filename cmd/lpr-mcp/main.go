package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// analyzeRequest mirrors the LPR API request model.
type analyzeRequest struct {
	URL            string   `json:"url"`
	ViewportWidth  int      `json:"viewport_width,omitempty"`
	ViewportHeight int      `json:"viewport_height,omitempty"`
	Stealth        bool     `json:"stealth,omitempty"`
	Categories     []string `json:"categories,omitempty"`
}

// analyzeResponse mirrors the LPR API response model.
type analyzeResponse struct {
	Success bool `json:"success"`
	Report  *struct {
		URL          string `json:"url"`
		FinalURL     string `json:"final_url"`
		Title        string `json:"title"`
		OverallScore *int   `json:"overall_score"`
		Categories   map[string]struct {
			Score           *int     `json:"score"`
			Issues          []string `json:"issues"`
			Recommendations []string `json:"recommendations"`
		} `json:"categories"`
	} `json:"report"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("LPR_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("LPR_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "LPR_API_KEY is required")
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"landing-page-report",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	analyzePageTool := mcp.NewTool("analyze_page",
		mcp.WithDescription("Analyze a landing page for conversion effectiveness. Renders the page in a headless browser and scores call-to-action placement, whitespace usage, social proof, typography, images, and page speed (0-100 each)."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the landing page to analyze"),
		),
		mcp.WithString("categories",
			mcp.Description("Comma-separated subset of categories to analyze: cta, whitespace, social_proof, fonts, images, page_speed. Default: all."),
		),
		mcp.WithBoolean("stealth",
			mcp.Description("Enable anti-bot-detection evasions during page capture"),
		),
	)
	s.AddTool(analyzePageTool, handleAnalyzePage(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleAnalyzePage(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 180 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		reqBody := analyzeRequest{
			URL:     url,
			Stealth: request.GetBool("stealth", false),
		}
		if cats := request.GetString("categories", ""); cats != "" {
			for _, c := range strings.Split(cats, ",") {
				if trimmed := strings.TrimSpace(c); trimmed != "" {
					reqBody.Categories = append(reqBody.Categories, trimmed)
				}
			}
		}

		body, err := json.Marshal(reqBody)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/analyze", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-API-Key", apiKey)

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var analyzeResp analyzeResponse
		if err := json.Unmarshal(respBody, &analyzeResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !analyzeResp.Success || analyzeResp.Report == nil {
			errMsg := "analysis failed"
			if analyzeResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", analyzeResp.Error.Code, analyzeResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		return mcp.NewToolResultText(formatReport(analyzeResp.Report)), nil
	}
}

// formatReport renders the report as readable text for the tool caller.
func formatReport(r *struct {
	URL          string `json:"url"`
	FinalURL     string `json:"final_url"`
	Title        string `json:"title"`
	OverallScore *int   `json:"overall_score"`
	Categories   map[string]struct {
		Score           *int     `json:"score"`
		Issues          []string `json:"issues"`
		Recommendations []string `json:"recommendations"`
	} `json:"categories"`
}) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Landing Page Report: %s\n", r.URL)
	if r.Title != "" {
		fmt.Fprintf(&sb, "Title: %s\n", r.Title)
	}
	if r.OverallScore != nil {
		fmt.Fprintf(&sb, "Overall score: %d/100\n", *r.OverallScore)
	} else {
		sb.WriteString("Overall score: n/a\n")
	}

	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cat := r.Categories[name]
		sb.WriteString("\n")
		if cat.Score != nil {
			fmt.Fprintf(&sb, "## %s: %d/100\n", name, *cat.Score)
		} else {
			fmt.Fprintf(&sb, "## %s: not applicable\n", name)
		}
		for _, issue := range cat.Issues {
			fmt.Fprintf(&sb, "- issue: %s\n", issue)
		}
		for _, rec := range cat.Recommendations {
			fmt.Fprintf(&sb, "- recommendation: %s\n", rec)
		}
	}

	return sb.String()
}
