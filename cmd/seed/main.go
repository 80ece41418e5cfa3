package main

import (
	"log"
	"os"

	"clinic-intake-be/internal/model"
	"clinic-intake-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds a starter body-site tree with symptom lists on the leaves. Safe to
// re-run: it refuses to touch a catalog that already has rows.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var count int64
	if err := db.Model(&model.BodySite{}).Count(&count).Error; err != nil {
		log.Fatalf("Error: Failed to inspect catalog: %v", err)
	}
	if count > 0 {
		color.Yellow("Catalog already has %d body sites, nothing to do.", count)
		return
	}

	s := &seeder{db: db}

	head := s.site(nil, "Head & Face", 0)
	s.leaf(head, "Head", 0, "Headache", "Dizziness", "Head injury", "Memory problems")
	s.leaf(head, "Eyes", 1, "Blurred vision", "Eye pain", "Redness", "Double vision", "Discharge")
	s.leaf(head, "Ears", 2, "Ear pain", "Hearing loss", "Ringing", "Discharge")
	s.leaf(head, "Nose", 3, "Congestion", "Runny nose", "Nosebleed", "Loss of smell")
	s.leaf(head, "Mouth & Throat", 4, "Sore throat", "Tooth pain", "Mouth sores", "Hoarseness", "Difficulty swallowing")

	chest := s.site(nil, "Chest", 1)
	s.leaf(chest, "Heart area", 0, "Chest pain", "Palpitations", "Pressure or tightness")
	s.leaf(chest, "Lungs & Breathing", 1, "Cough", "Shortness of breath", "Wheezing", "Coughing up blood")

	abdomen := s.site(nil, "Abdomen", 2)
	s.leaf(abdomen, "Upper abdomen", 0, "Stomach pain", "Nausea", "Vomiting", "Heartburn", "Bloating")
	s.leaf(abdomen, "Lower abdomen", 1, "Cramping", "Diarrhea", "Constipation", "Blood in stool", "Urinary pain")

	back := s.site(nil, "Back", 3)
	s.leaf(back, "Upper back", 0, "Pain", "Stiffness", "Muscle spasm")
	s.leaf(back, "Lower back", 1, "Pain", "Stiffness", "Pain radiating to leg", "Numbness")

	arms := s.site(nil, "Arms & Hands", 4)
	s.leaf(arms, "Shoulder", 0, "Pain", "Limited movement", "Swelling")
	s.leaf(arms, "Elbow & Forearm", 1, "Pain", "Swelling", "Weakness")
	s.leaf(arms, "Wrist & Hand", 2, "Pain", "Numbness or tingling", "Swelling", "Stiffness")

	legs := s.site(nil, "Legs & Feet", 5)
	s.leaf(legs, "Hip & Thigh", 0, "Pain", "Limping", "Limited movement")
	s.leaf(legs, "Knee", 1, "Pain", "Swelling", "Instability", "Locking")
	s.leaf(legs, "Ankle & Foot", 2, "Pain", "Swelling", "Numbness", "Difficulty walking")

	skin := s.site(nil, "Skin", 6)
	s.symptoms(skin, "Rash", "Itching", "New or changing mole", "Wound that will not heal", "Bruising")

	general := s.site(nil, "General / Whole body", 7)
	s.symptoms(general, "Fever", "Fatigue", "Weight loss", "Night sweats", "Loss of appetite", "Sleep problems")

	color.Green("✅ Seeded %d body sites and %d symptoms.", s.siteCount, s.symptomCount)
}

type seeder struct {
	db           *gorm.DB
	siteCount    int
	symptomCount int
}

func (s *seeder) site(parent *model.BodySite, name string, order int) *model.BodySite {
	site := model.BodySite{
		Id:        uuid.New(),
		Name:      name,
		SortOrder: order,
	}
	if parent != nil {
		site.ParentId = &parent.Id
		site.Level = parent.Level + 1
	}
	if err := s.db.Create(&site).Error; err != nil {
		log.Fatalf("Error: Failed to seed body site %q: %v", name, err)
	}
	s.siteCount++
	return &site
}

func (s *seeder) symptoms(site *model.BodySite, names ...string) {
	for i, name := range names {
		sym := model.Symptom{
			Id:         uuid.New(),
			BodySiteId: site.Id,
			Name:       name,
			SortOrder:  i,
		}
		if err := s.db.Create(&sym).Error; err != nil {
			log.Fatalf("Error: Failed to seed symptom %q: %v", name, err)
		}
		s.symptomCount++
	}
}

func (s *seeder) leaf(parent *model.BodySite, name string, order int, symptoms ...string) {
	site := s.site(parent, name, order)
	s.symptoms(site, symptoms...)
}
