//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"menu-app/internal/model"
)

// generateSampleMenu creates a gzipped JSON Lines menu for MENU_IMPORT_FILES.
// The last two lines are deliberately invalid so an import shows rejections.
func main() {
	dataDir := "data/menu"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	items := []model.MenuItemForm{
		{Name: "Tomato Soup", Description: "Roasted tomatoes and basil", Course: "Starters", Price: "5.50"},
		{Name: "Caesar Salad", Description: "Cos lettuce, parmesan and croutons", Course: "Starters", Price: "6.50"},
		{Name: "Sirloin Steak", Description: "28-day aged with peppercorn sauce", Course: "Mains", Price: "24.00"},
		{Name: "Mushroom Risotto", Description: "Arborio rice with wild mushrooms", Course: "Mains", Price: "16.5"},
		{Name: "Chocolate Fondant", Description: "Served with vanilla ice cream", Course: "Dessert", Price: "7.25"},
		{Name: "Lemonade", Description: "Freshly squeezed", Course: "Drinks", Price: "3"},
		{Name: "House Red", Description: "Glass of merlot", Course: "Drinks", Price: "9.999"},
		{Name: "Brunch Plate", Description: "Eggs and toast", Course: "Brunch", Price: "11.00"},
	}

	filePath := filepath.Join(dataDir, "sample_menu.jsonl.gz")
	if err := createMenuFile(filePath, items); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d lines\n", filePath, len(items))
	fmt.Println("\nImport with:")
	fmt.Printf("  MENU_IMPORT_FILES=%s go run ./cmd/api\n", filePath)
	fmt.Println("\nExpected rejections:")
	fmt.Println("  - line 7: INVALID_PRICE (more than two decimals)")
	fmt.Println("  - line 8: INVALID_COURSE (Brunch)")
}

func createMenuFile(filePath string, items []model.MenuItemForm) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, item := range items {
		if err := encoder.Encode(item); err != nil {
			return fmt.Errorf("failed to write menu item: %w", err)
		}
	}

	return nil
}
