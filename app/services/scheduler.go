package services

import (
	"database/sql"
	"log"
	"time"

	"scolapay/app/database"
)

// StartScheduler starts the background task scheduler.
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 00:05, after the day rolls over.
			if now.Hour() == 0 && now.Minute() == 5 {
				log.Println("Triggering scheduled tasks [00:05]...")

				n, err := database.ExpireOverduePayments(db)
				if err != nil {
					log.Printf("Error expiring overdue payments: %v", err)
				} else if n > 0 {
					log.Printf("Marked %d overdue payments as EXPIRED", n)
				}
			}
		}
	}()
}
