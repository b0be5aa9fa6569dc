package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bigmart/sales_dashboard/analytics"
	"github.com/bigmart/sales_dashboard/config"
)

func main() {
	cfg := config.GetConfig()

	fmt.Println("loading dataset from", cfg.CsvPath)
	dataset, err := LoadDataset(cfg.CsvPath, cfg.ReferenceYear)
	if err != nil {
		log.Fatalln("cannot load dataset:", err)
	}
	fmt.Println("loaded", dataset.Len(), "records")

	engine := analytics.NewFilterEngine(dataset)

	model, err := engine.FitLinearRegression(engine.FullView(), analytics.ColItemMRP, analytics.ColOutletSales)
	if err != nil {
		// the dashboard still works without the model block
		log.Println("regression model unavailable:", err)
		model = nil
	}

	fmt.Println(GenerateTextReport(engine, engine.FullView(), model))

	server := NewDashboardServer(engine, model)
	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	fmt.Println("listen on: http://localhost" + cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalln("error starting server:", err)
	}
}
