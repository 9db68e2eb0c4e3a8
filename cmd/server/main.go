package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/db"
	"backoffice/internal/handlers"
	"backoffice/internal/reports"
	"backoffice/internal/services"
	"backoffice/internal/store"
	"backoffice/internal/websocket"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	counterparties := store.NewCounterpartyStore(database)
	debts := store.NewDebtStore(database)
	payments := store.NewPaymentStore(database)
	charts := store.NewChartStore(database)
	accounts := store.NewAccountStore(database)
	ledger := store.NewLedgerStore(database)
	cash := store.NewCashStore(database)
	partners := store.NewPartnerStore(database)
	audit := store.NewAuditStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	writer := services.NewLedgerWriter(charts, accounts, ledger, cash, audit, hub)
	bulkPayments := services.NewBulkPaymentService(txRunner, counterparties, debts, payments, writer, audit)
	position := reports.NewPositionService(ledger, accounts, partners)

	handler := handlers.New(cfg, bulkPayments, position, debts, accounts, audit, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("back-office API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
