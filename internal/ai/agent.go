package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/ledger"
	"storeflex-lite/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

const modelName = "gemini-2.0-flash-001"

// RunAssistant answers a business question with tool access to the
// tenant's inventory, sales report and moneyflow summary. Advisory only:
// nothing here can mutate ledger state.
func RunAssistant(ctx context.Context, db *gorm.DB, userID uint, userMessage string, apiKey string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the StoreFlex assistant for a small retail store.

	RULES:
	1. INVENTORY: For any question about a product's stock, price or cost, call 'check_inventory' and read the JSON yourself.
	2. SALES: For revenue or sales-count questions, call 'get_sales_report' with a date range.
	3. MONEY: For questions about who owes what, outstanding credit or pending checks, call 'get_moneyflow_summary'.
	4. Answer with concrete numbers from the tools. Never invent figures.

	USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list. Use this to find ANY product details like ID, Name, Price, Cost, or Stock.",
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
				{
					Name:        "get_moneyflow_summary",
					Description: "Get outstanding receivables, payables and pending check totals.",
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	// One round of tool calls is enough for these lookups.
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			toolResp, err := executeTool(ctx, db, userID, funcCall)
			if err != nil {
				return "", err
			}
			finalResp, err := session.SendMessage(ctx, toolResp)
			if err != nil {
				return "", err
			}
			return printResponse(finalResp), nil
		}
	}

	return printResponse(resp), nil
}

func executeTool(ctx context.Context, db *gorm.DB, userID uint, funcCall genai.FunctionCall) (genai.FunctionResponse, error) {
	switch funcCall.Name {
	case "check_inventory":
		var products []models.Product
		if err := db.Where("user_id = ?", userID).Find(&products).Error; err != nil {
			return genai.FunctionResponse{}, err
		}

		type simpleProduct struct {
			ID    uint    `json:"id"`
			Name  string  `json:"name"`
			Stock int     `json:"stock"`
			Price float64 `json:"price"`
			Cost  float64 `json:"cost"`
		}
		simpleList := make([]simpleProduct, 0, len(products))
		for _, p := range products {
			simpleList = append(simpleList, simpleProduct{
				ID:    p.ID,
				Name:  p.Name,
				Stock: p.Stock,
				Price: p.SellingPrice,
				Cost:  p.CostPrice,
			})
		}
		jsonBytes, _ := json.Marshal(simpleList)
		return genai.FunctionResponse{
			Name:     "check_inventory",
			Response: map[string]interface{}{"inventory": string(jsonBytes)},
		}, nil

	case "get_sales_report":
		args := funcCall.Args
		startStr, _ := args["start_date"].(string)
		endStr, _ := args["end_date"].(string)

		start, err1 := time.Parse("2006-01-02", startStr)
		end, err2 := time.Parse("2006-01-02", endStr)
		if err1 != nil || err2 != nil {
			return genai.FunctionResponse{
				Name:     "get_sales_report",
				Response: map[string]interface{}{"error": "dates must be in YYYY-MM-DD format"},
			}, nil
		}
		end = end.Add(23*time.Hour + 59*time.Minute)

		report, err := database.GetSalesReport(db, userID, start, end)
		if err != nil {
			return genai.FunctionResponse{}, err
		}
		return genai.FunctionResponse{
			Name: "get_sales_report",
			Response: map[string]interface{}{
				"revenue":     report.TotalRevenue,
				"sales_count": report.TotalCount,
			},
		}, nil

	case "get_moneyflow_summary":
		data, err := ledger.FetchMoneyflowData(db, userID)
		if err != nil {
			return genai.FunctionResponse{}, err
		}
		return genai.FunctionResponse{
			Name: "get_moneyflow_summary",
			Response: map[string]interface{}{
				"receivables_total":    data.ReceivablesTotal,
				"payables_total":       data.PayablesTotal,
				"pending_checks_total": data.PendingChecksTotal,
				"open_entries":         len(data.Entries),
			},
		}, nil

	default:
		return genai.FunctionResponse{
			Name:     funcCall.Name,
			Response: map[string]interface{}{"error": "unknown tool"},
		}, nil
	}
}

// BarcodeLookup is the AI's best guess for an unknown barcode.
type BarcodeLookup struct {
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category"`
}

// LookupBarcode asks the model to identify a product from its barcode.
// Advisory: the caller decides whether to create a product from it.
func LookupBarcode(ctx context.Context, barcode string, apiKey string) (*BarcodeLookup, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.GenerationConfig.ResponseMIMEType = "application/json"

	prompt := fmt.Sprintf(`Identify the retail product with barcode %q.
Respond with JSON only: {"name": "...", "brand": "...", "category": "..."}.
If you cannot identify it, use your best guess for a plausible product.`, barcode)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	var lookup BarcodeLookup
	if err := json.Unmarshal([]byte(printResponse(resp)), &lookup); err != nil {
		return nil, fmt.Errorf("unexpected AI response: %w", err)
	}
	if strings.TrimSpace(lookup.Name) == "" {
		return nil, fmt.Errorf("AI could not identify barcode %s", barcode)
	}
	return &lookup, nil
}

// PriceSuggestionInput bundles what the model needs to suggest a price.
type PriceSuggestionInput struct {
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	CostPrice    float64 `json:"cost_price"`
	CurrentPrice float64 `json:"current_price"`
	SoldLast30d  int     `json:"sold_last_30d"`
}

// PriceSuggestion is the model's advisory pricing answer.
type PriceSuggestion struct {
	SuggestedPrice float64 `json:"suggested_price"`
	Reasoning      string  `json:"reasoning"`
}

// SuggestPrice asks for a selling-price recommendation. The ledger never
// depends on this; it only pre-fills a form field.
func SuggestPrice(ctx context.Context, in PriceSuggestionInput, apiKey string) (*PriceSuggestion, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.GenerationConfig.ResponseMIMEType = "application/json"

	contextJSON, _ := json.Marshal(in)
	prompt := fmt.Sprintf(`You are a retail pricing assistant. Given this product data:
%s
Suggest a selling price that covers cost with a healthy small-retail margin.
Respond with JSON only: {"suggested_price": <number>, "reasoning": "<one or two sentences>"}.`, contextJSON)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	var suggestion PriceSuggestion
	if err := json.Unmarshal([]byte(printResponse(resp)), &suggestion); err != nil {
		return nil, fmt.Errorf("unexpected AI response: %w", err)
	}
	return &suggestion, nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
