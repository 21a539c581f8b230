//go:build ignore

// Command generate_sample_menu writes a gzipped JSON-lines menu seed for
// local development.
//
//	go run scripts/generate_sample_menu.go [-out data/menu/menu.jsonl.gz]
package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type menuItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

var sampleMenu = []menuItem{
	{"Tomato Basil Soup", "Slow-cooked tomatoes, fresh basil, cream", "Starters", 5.50, ""},
	{"Garlic Bread", "Sourdough, roasted garlic butter, parsley", "Starters", 4.00, ""},
	{"Caesar Salad", "Romaine, parmesan, croutons, anchovy dressing", "Starters", 7.25, ""},
	{"Classic Burger", "Beef patty, cheddar, pickles, house sauce", "Mains", 11.90, ""},
	{"Mushroom Burger", "Portobello, swiss cheese, caramelised onion", "Mains", 10.50, ""},
	{"Margherita Pizza", "San Marzano tomato, mozzarella, basil", "Mains", 12.00, ""},
	{"Chicken Tikka Bowl", "Basmati rice, tikka chicken, mint yoghurt", "Mains", 13.75, ""},
	{"Fries", "Hand-cut, sea salt", "Sides", 2.50, ""},
	{"Sweet Potato Fries", "Smoked paprika mayo", "Sides", 3.25, ""},
	{"Chocolate Brownie", "Warm, with vanilla ice cream", "Desserts", 5.00, ""},
	{"Lemonade", "Fresh lemons, mint", "Drinks", 3.00, ""},
	{"Iced Tea", "Black tea, peach", "Drinks", 2.75, ""},
}

func main() {
	out := flag.String("out", "data/menu/menu.jsonl.gz", "output file")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := writeSeed(*out, sampleMenu); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d menu items\n", *out, len(sampleMenu))
}

func writeSeed(path string, items []menuItem) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := json.NewEncoder(gzipWriter)
	for _, item := range items {
		if err := encoder.Encode(item); err != nil {
			return fmt.Errorf("failed to write item %q: %w", item.Name, err)
		}
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return nil
}
