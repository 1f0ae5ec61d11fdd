package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"salonbook/internal/database"
	"salonbook/internal/domain"
	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/pkg/validator"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "salon.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM booking_items")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM vouchers")
	db.Exec("DELETE FROM holidays")
	db.Exec("DELETE FROM working_hours")
	db.Exec("DELETE FROM stylists")
	db.Exec("DELETE FROM salon_services")
	db.Exec("DELETE FROM salons")

	log.Println("Creating salon...")
	salon := domain.Salon{
		Name:      "Glow Studio",
		Address:   "12 Abay Ave",
		Phone:     "+7 700 000 0001",
		Published: true,
		OpenTime:  "09:00",
		CloseTime: "18:00",
	}
	if errs := validator.Validate(&salon); errs != nil {
		log.Fatalf("invalid salon seed: %v", errs)
	}
	if err := db.Create(&salon).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Creating services...")
	services := []domain.SalonService{
		{SalonID: salon.ID, Name: "Haircut", Active: true, DurationMin: 60, Price: 100000},
		{SalonID: salon.ID, Name: "Coloring", Active: true, DurationMin: 120, Price: 250000},
		{SalonID: salon.ID, Name: "Styling", Active: true, DurationMin: 45, Price: 80000},
		{SalonID: salon.ID, Name: "Perm (retired)", Active: false, DurationMin: 90, Price: 150000},
	}
	if err := db.Create(&services).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Creating stylists...")
	stylists := []domain.Stylist{
		{SalonID: salon.ID, Name: "Aliya", Active: true},
		{SalonID: salon.ID, Name: "Marat", Active: true},
		{SalonID: salon.ID, Name: "Dana", Active: false},
	}
	if err := db.Create(&stylists).Error; err != nil {
		log.Fatal(err)
	}

	// Aliya works longer hours on weekdays
	log.Println("Creating working hours...")
	var hours []domain.WorkingHours
	for wd := 1; wd <= 5; wd++ {
		hours = append(hours, domain.WorkingHours{
			SalonID:   salon.ID,
			StylistID: &stylists[0].ID,
			Weekday:   wd,
			StartTime: "08:00",
			EndTime:   "20:00",
		})
	}
	if err := db.Create(&hours).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Creating holiday...")
	nextMonth := time.Now().UTC().AddDate(0, 1, 0)
	holiday := domain.Holiday{
		SalonID: salon.ID,
		Date:    time.Date(nextMonth.Year(), nextMonth.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&holiday).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Creating vouchers...")
	minOrder := int64(50000)
	pct := 10
	maxDiscount := int64(5000)
	fixed := int64(20000)
	now := time.Now().UTC()
	vouchers := []domain.Voucher{
		{
			SalonID:     salon.ID,
			Code:        "WELCOME10",
			Active:      true,
			StartAt:     now.AddDate(0, 0, -1),
			EndAt:       now.AddDate(0, 3, 0),
			MinOrderAmt: &minOrder,
			DiscountPct: &pct,
			MaxDiscount: &maxDiscount,
		},
		{
			SalonID:     salon.ID,
			Code:        "FLAT20K",
			Active:      true,
			StartAt:     now.AddDate(0, 0, -1),
			EndAt:       now.AddDate(0, 1, 0),
			DiscountAmt: &fixed,
		},
		{
			SalonID: salon.ID,
			Code:    "EXPIRED",
			Active:  true,
			StartAt: now.AddDate(0, -2, 0),
			EndAt:   now.AddDate(0, -1, 0),
		},
	}
	if err := db.Create(&vouchers).Error; err != nil {
		log.Fatal(err)
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		j := jwtsvc.New(secret, 24*time.Hour)
		customerToken, _ := j.GenerateToken(1, "customer")
		salonToken, _ := j.GenerateToken(100, "salon")
		fmt.Println("demo customer token:", customerToken)
		fmt.Println("demo salon token:   ", salonToken)
	}

	log.Printf("Seed done: salon=%d services=%d stylists=%d", salon.ID, len(services), len(stylists))
}
