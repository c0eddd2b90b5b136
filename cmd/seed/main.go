package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"

	"clearcomply/internal/model"
	"clearcomply/internal/repository"
)

// frameworkDoc is the YAML shape of a framework seed file.
type frameworkDoc struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Version  string       `yaml:"version"`
	Sections []sectionDoc `yaml:"sections"`
}

type sectionDoc struct {
	ID        string        `yaml:"id"`
	Title     string        `yaml:"title"`
	Weight    float64       `yaml:"weight"`
	Questions []questionDoc `yaml:"questions"`
}

type questionDoc struct {
	ID             string   `yaml:"id"`
	Text           string   `yaml:"text"`
	Type           string   `yaml:"type"`
	Options        []string `yaml:"options,omitempty"`
	TriggerAnswers []string `yaml:"trigger_answers,omitempty"`
	Validation     struct {
		Required bool   `yaml:"required"`
		Pattern  string `yaml:"pattern,omitempty"`
	} `yaml:"validation"`
}

func (d *frameworkDoc) toModel() *model.Framework {
	fw := &model.Framework{
		ID:      d.ID,
		Name:    d.Name,
		Version: d.Version,
	}
	for _, s := range d.Sections {
		section := model.Section{
			ID:     s.ID,
			Title:  s.Title,
			Weight: s.Weight,
		}
		for _, q := range s.Questions {
			section.Questions = append(section.Questions, model.Question{
				ID:             q.ID,
				Text:           q.Text,
				Type:           model.QuestionType(q.Type),
				Options:        q.Options,
				TriggerAnswers: q.TriggerAnswers,
				Validation: model.Validation{
					Required: q.Validation.Required,
					Pattern:  q.Validation.Pattern,
				},
				Meta: model.QuestionMeta{Source: model.SourceFramework},
			})
		}
		fw.Sections = append(fw.Sections, section)
	}
	return fw
}

func main() {
	seedDir := "seeds"
	if len(os.Args) > 1 {
		seedDir = os.Args[1]
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "clearcomply"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewFrameworkRepo(client.Database(mongoDB))

	files, err := filepath.Glob(filepath.Join(seedDir, "*.yaml"))
	if err != nil {
		log.Fatalf("Failed to list seed files: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("No framework seed files found in %s", seedDir)
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", file, err)
		}

		var doc frameworkDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			log.Fatalf("Failed to parse %s: %v", file, err)
		}

		fw := doc.toModel()
		if err := fw.Validate(); err != nil {
			log.Fatalf("Invalid framework in %s: %v", file, err)
		}

		existing, err := repo.GetByID(ctx, fw.ID)
		if err != nil {
			log.Fatalf("Failed to check framework %s: %v", fw.ID, err)
		}
		if existing != nil {
			fmt.Printf("Framework %s (%s) already exists, skipping\n", fw.ID, fw.Name)
			continue
		}

		if err := repo.Create(ctx, fw); err != nil {
			log.Fatalf("Failed to insert framework %s: %v", fw.ID, err)
		}
		fmt.Printf("Created framework %s (%s) with %d questions\n", fw.ID, fw.Name, fw.QuestionCount())
	}
}
