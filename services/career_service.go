package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"career-quest-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type CareerService struct {
	DB *gorm.DB
}

func NewCareerService(db *gorm.DB) *CareerService {
	return &CareerService{DB: db}
}

var titleCaser = cases.Title(language.English)

// NormalizeCareerName canonicalizes an admin-entered career name
// ("full stack developer" → "Full Stack Developer").
func NormalizeCareerName(name string) string {
	return titleCaser.String(strings.TrimSpace(name))
}

// ListCareers returns the full career path catalog.
func (s *CareerService) ListCareers() ([]models.CareerPath, error) {
	var careers []models.CareerPath
	err := s.DB.Order("name ASC").Find(&careers).Error
	return careers, err
}

// GetCareerBySlug fetches one career path.
func (s *CareerService) GetCareerBySlug(careerSlug string) (*models.CareerPath, error) {
	var career models.CareerPath
	if err := s.DB.Where("slug = ?", careerSlug).First(&career).Error; err != nil {
		return nil, err
	}
	return &career, nil
}

// CreateCareer adds a career path to the catalog (admin only). The slug is
// derived from the normalized name and must be unique.
func (s *CareerService) CreateCareer(career *models.CareerPath) error {
	career.Name = NormalizeCareerName(career.Name)
	if career.Name == "" {
		return errors.New("career name is required")
	}
	if career.ID == "" {
		career.ID = uuid.NewString()
	}
	career.Slug = slug.Make(career.Name)

	if err := s.DB.Create(career).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("career %q already exists", career.Slug)
		}
		return err
	}
	return nil
}

// SeedDefaultCareers inserts the curated career catalog if missing
// (idempotent, safe at every startup).
func (s *CareerService) SeedDefaultCareers() error {
	for i := range defaultCareers {
		c := defaultCareers[i]
		var existing models.CareerPath
		err := s.DB.Where("slug = ?", c.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		c.ID = uuid.NewString()
		if err := s.DB.Create(&c).Error; err != nil {
			return err
		}
		log.Printf("🌱 Seeded career path: %s", c.Slug)
	}
	return nil
}

var defaultCareers = []models.CareerPath{
	{
		Slug:        "web-developer",
		Name:        "Web Developer",
		Description: "Build and maintain websites and web applications",
		Overview:    "Web developers create the digital experiences we use every day. From simple landing pages to complex web applications, you'll bring designs to life and make them interactive.",
		Skills:      models.StringList{"HTML", "CSS", "JavaScript", "React", "Node.js", "Responsive Design"},
		Opportunities: models.StringList{
			"Frontend Developer at tech startups",
			"Fullstack Developer at established companies",
			"Freelance Web Developer for small businesses",
			"UI/UX Developer at design agencies",
		},
		Projects: models.StringList{
			"Personal Portfolio Website",
			"E-commerce Store with Payment Integration",
			"Task Management App",
			"Blog Platform with CMS",
		},
		AverageSalary: "$50,000 - $100,000",
		GrowthRate:    "13% (Much faster than average)",
	},
	{
		Slug:        "full-stack-developer",
		Name:        "Full Stack Developer",
		Description: "Work across the whole stack, from databases to user interfaces",
		Overview:    "Full stack developers own features end to end. You'll design APIs, model data, and ship the interfaces users touch.",
		Skills:      models.StringList{"JavaScript", "TypeScript", "React", "Node.js", "SQL", "REST APIs"},
		Opportunities: models.StringList{
			"Full Stack Developer at product companies",
			"Founding Engineer at early startups",
			"Platform Engineer at scale-ups",
		},
		Projects: models.StringList{
			"Social Media Dashboard",
			"Real-time Chat Application",
			"Booking System with Payments",
		},
		AverageSalary: "$60,000 - $130,000",
		GrowthRate:    "17% (Much faster than average)",
	},
	{
		Slug:        "mobile-developer",
		Name:        "Mobile Developer",
		Description: "Create applications for smartphones and tablets",
		Overview:    "Mobile developers build apps that millions of people use on their phones every day. Whether it's iOS, Android, or cross-platform, you'll create mobile experiences that solve real problems.",
		Skills:      models.StringList{"Swift", "Kotlin", "React Native", "Flutter", "Mobile UI/UX"},
		Opportunities: models.StringList{
			"iOS Developer at Apple-focused companies",
			"Android Developer at Google ecosystem companies",
			"React Native Developer for cross-platform apps",
		},
		Projects: models.StringList{
			"Weather App with Location Services",
			"Fitness Tracking App",
			"Personal Finance Manager",
		},
		AverageSalary: "$55,000 - $120,000",
		GrowthRate:    "22% (Much faster than average)",
	},
	{
		Slug:        "data-scientist",
		Name:        "Data Scientist",
		Description: "Analyze complex data to drive business decisions",
		Overview:    "Data scientists turn raw data into actionable insights. You'll use statistics, machine learning, and programming to solve complex business problems and predict future trends.",
		Skills:      models.StringList{"Python", "R", "SQL", "Machine Learning", "Statistics", "Data Visualization"},
		Opportunities: models.StringList{
			"Data Scientist at tech companies",
			"Machine Learning Engineer at AI startups",
			"Business Intelligence Analyst at corporations",
		},
		Projects: models.StringList{
			"Customer Churn Prediction Model",
			"Sales Forecasting Dashboard",
			"Recommendation System",
		},
		AverageSalary: "$70,000 - $150,000",
		GrowthRate:    "35% (Much faster than average)",
	},
}
