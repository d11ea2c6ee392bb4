package main

import (
	"fmt"
	"os"

	"filestore/internal/config"
	"filestore/internal/storage"
)

func main() {
	cfg := config.LoadOrDefault()

	mgr, err := storage.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "filestore: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	fmt.Println("=== File Storage Manager ===")
	fmt.Println()

	if err := mgr.Create("documents/test.txt", "This is a test file"); err != nil {
		fmt.Fprintf(os.Stderr, "create: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("test file created")

	user := map[string]any{
		"name": "Ali",
		"age":  25,
		"city": "Toshkent",
		"job":  "dasturchi",
	}
	if err := mgr.SaveJSON("data/user_data.json", user); err != nil {
		fmt.Fprintf(os.Stderr, "save json: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("json data saved")

	rows := [][]string{
		{"Ali", "25", "Toshkent"},
		{"Vali", "30", "Samarqand"},
		{"Sardor", "28", "Buxoro"},
	}
	if err := mgr.SaveCSV("data/users.csv", rows, []string{"Name", "Age", "City"}); err != nil {
		fmt.Fprintf(os.Stderr, "save csv: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("csv data saved")

	files, err := mgr.List("data", "*")
	if err == nil {
		fmt.Printf("\nfiles in data/: %v\n", files)
	}

	if info, err := mgr.Info("data/user_data.json"); err == nil {
		fmt.Printf("\nuser_data.json: %d bytes (%s), modified %s, type %s\n",
			info.Size, info.SizeHuman, info.Modified, info.MIMEType)
	}

	if stats, err := mgr.Stats(); err == nil {
		fmt.Printf("\nstorage: %d files, %.2f MB under %s\n",
			stats.TotalFiles, stats.TotalSizeMB, stats.BaseDirectory)
	}
}
