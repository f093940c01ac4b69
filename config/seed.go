package config

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resort-backend/models"
	"resort-backend/utils"
)

func rate(v float64) *float64 { return &v }

func capacity(n int) *int { return &n }

func sampleRooms() []models.Room {
	return []models.Room{
		{
			Name:         "Standard Room",
			Description:  "Cosy room with a mountain view, double bed, TV, air conditioning, minibar and shower.",
			RoomType:     "standard",
			Capacity:     2,
			BasePrice:    3000,
			WeekdayPrice: rate(3000),
			WeekendPrice: rate(3500),
			MealPrice:    rate(4200),
			IsAvailable:  true,
			ImageURL:     "https://images.unsplash.com/photo-1566195992011-5f6b21e539aa",
			Amenities:    datatypes.JSONSlice[string]{"wifi", "tv", "air conditioning", "minibar"},
		},
		{
			Name:         "Deluxe",
			Description:  "Spacious deluxe room with a panoramic view, sofa lounge and jacuzzi.",
			RoomType:     "luxury",
			Capacity:     2,
			BasePrice:    5000,
			WeekdayPrice: rate(5000),
			WeekendPrice: rate(6000),
			MealPrice:    rate(6500),
			IsAvailable:  true,
			ImageURL:     "https://images.unsplash.com/photo-1590490360182-c33d57733427",
			Amenities:    datatypes.JSONSlice[string]{"wifi", "tv", "jacuzzi", "minibar"},
		},
		{
			Name:        "Family Room",
			Description: "Two bedrooms with double beds, a living room and a shower.",
			RoomType:    "family",
			Capacity:    4,
			BasePrice:   7000,
			IsAvailable: true,
			ImageURL:    "https://images.unsplash.com/photo-1512918728675-ed5a9ecdebfd",
			Amenities:   datatypes.JSONSlice[string]{"wifi", "tv", "kitchenette"},
		},
		{
			Name:         "Presidential Suite",
			Description:  "King bed, study, sauna, jacuzzi and a terrace over the mountains.",
			RoomType:     "suite",
			Capacity:     2,
			BasePrice:    12000,
			WeekendPrice: rate(14000),
			IsAvailable:  true,
			ImageURL:     "https://images.unsplash.com/photo-1618773928121-c32242e63f39",
			Amenities:    datatypes.JSONSlice[string]{"wifi", "tv", "sauna", "jacuzzi", "terrace"},
		},
	}
}

func sampleServices() []models.Service {
	return []models.Service{
		{Name: "Sauna", Description: "Finnish sauna with a plunge pool.", Price: 2000, IsHourly: true, MaxCapacity: capacity(6), IsAvailable: true},
		{Name: "Indoor Pool", Description: "Heated indoor pool, 10x5 m.", Price: 1500, IsHourly: true, MaxCapacity: capacity(10), IsAvailable: true},
		{Name: "Lounger", Description: "Covered rest area with mattresses and pillows.", Price: 1000, MaxCapacity: capacity(4), IsAvailable: true},
		{Name: "Extra Bed", Description: "Additional single bed installed on request.", Price: 3000, MaxCapacity: capacity(1), IsAvailable: true},
		{Name: "Grounds Tour", Description: "Group tour of the resort including the salt cave.", Price: 5000, MaxCapacity: capacity(5), IsAvailable: true},
		{Name: "Salt Cave", Description: "Halotherapy session in the salt cave.", Price: 1200, IsHourly: true, MaxCapacity: capacity(4), IsAvailable: true},
		{Name: "Kids Playroom", Description: "Playroom with an entertainer for children aged 3 to 12.", Price: 1000, IsHourly: true, MaxCapacity: capacity(8), IsAvailable: true},
	}
}

// SeedDatabase fills empty catalogue tables with sample data and writes the
// settings row when none exists. Non-empty tables are left alone.
func SeedDatabase(db *gorm.DB, cfg *Config) error {
	var roomCount int64
	if err := db.Model(&models.Room{}).Count(&roomCount).Error; err != nil {
		return fmt.Errorf("failed to count rooms: %w", err)
	}
	if roomCount == 0 {
		rooms := sampleRooms()
		for i := range rooms {
			rooms[i].CheckInTime, rooms[i].CheckOutTime = "14:00", "12:00"
			rooms[i].Photos = datatypes.JSONSlice[string]{}
		}
		if err := db.Create(&rooms).Error; err != nil {
			return fmt.Errorf("failed to seed rooms: %w", err)
		}
		log.Printf("✅ Seeded %d rooms", len(rooms))
	}

	var serviceCount int64
	if err := db.Model(&models.Service{}).Count(&serviceCount).Error; err != nil {
		return fmt.Errorf("failed to count services: %w", err)
	}
	if serviceCount == 0 {
		svcs := sampleServices()
		if err := db.Create(&svcs).Error; err != nil {
			return fmt.Errorf("failed to seed services: %w", err)
		}
		log.Printf("✅ Seeded %d services", len(svcs))
	}

	var st models.ResortSetting
	err := db.First(&st, models.ResortSettingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		st = models.ResortSetting{
			ID:              models.ResortSettingID,
			Name:            "Mountain Resort",
			ServiceDayStart: utils.FormatClock(cfg.ServiceDayStart),
			ServiceDayEnd:   utils.FormatClock(cfg.ServiceDayEnd),
			SlotMinutes:     int(cfg.SlotLength.Minutes()),
		}
		if err := db.Create(&st).Error; err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
		log.Println("✅ Seeded resort settings")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}
