package main

import (
	"context"
	"fmt"
	"log"

	"reliefconnect-ai-be/internal/config"
	"reliefconnect-ai-be/internal/model"
	"reliefconnect-ai-be/internal/repository/contract"
	"reliefconnect-ai-be/internal/repository/implementation"
	"reliefconnect-ai-be/pkg/database"
	"reliefconnect-ai-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type seedProduct struct {
	Name         string
	Description  string
	Utility      string
	Category     string
	Price        float64
	Availability string
	Emoji        string
}

var catalog = []seedProduct{
	{
		Name:         "Bottled Drinking Water (1L x 12)",
		Description:  "Sealed case of twelve one-liter bottles of purified drinking water.",
		Utility:      "Safe hydration when tap water is contaminated or unavailable after floods and earthquakes.",
		Category:     "water",
		Price:        6.50,
		Availability: "in_stock",
		Emoji:        "💧",
	},
	{
		Name:         "Emergency Thermal Blanket",
		Description:  "Mylar foil blanket that reflects up to 90% of body heat.",
		Utility:      "Prevents hypothermia for displaced families in cold or wet conditions.",
		Category:     "shelter",
		Price:        2.00,
		Availability: "in_stock",
		Emoji:        "🧣",
	},
	{
		Name:         "Family Relief Tent (4 person)",
		Description:  "Waterproof dome tent with sewn-in groundsheet, sets up in ten minutes.",
		Utility:      "Temporary shelter for households whose homes are damaged or unsafe.",
		Category:     "shelter",
		Price:        85.00,
		Availability: "limited",
		Emoji:        "⛺",
	},
	{
		Name:         "First Aid Kit (Standard)",
		Description:  "Bandages, antiseptic, gauze, gloves and basic medication in a sealed box.",
		Utility:      "Treatment of minor injuries when clinics are unreachable.",
		Category:     "medical",
		Price:        14.75,
		Availability: "in_stock",
		Emoji:        "🩹",
	},
	{
		Name:         "Hand-Crank Flashlight",
		Description:  "Dynamo-powered LED flashlight with built-in radio, no batteries required.",
		Utility:      "Light and emergency broadcasts during extended power outages.",
		Category:     "equipment",
		Price:        11.00,
		Availability: "in_stock",
		Emoji:        "🔦",
	},
	{
		Name:         "Canned Food Assortment (24 cans)",
		Description:  "Mixed case of ready-to-eat beans, fish and vegetables, 2-year shelf life.",
		Utility:      "Nutrition for families without cooking facilities or refrigeration.",
		Category:     "food",
		Price:        28.00,
		Availability: "in_stock",
		Emoji:        "🥫",
	},
	{
		Name:         "Water Purification Tablets (50 pack)",
		Description:  "Chlorine-based tablets, each treats one liter of clear water in 30 minutes.",
		Utility:      "Turns questionable water sources into drinkable water in the field.",
		Category:     "water",
		Price:        7.25,
		Availability: "in_stock",
		Emoji:        "💊",
	},
	{
		Name:         "Heavy Duty Tarpaulin (4x6m)",
		Description:  "Reinforced woven tarp with eyelets, UV and tear resistant.",
		Utility:      "Roof patching and ground cover for storm-damaged homes.",
		Category:     "shelter",
		Price:        19.50,
		Availability: "in_stock",
		Emoji:        "🏕️",
	},
	{
		Name:         "Hygiene Kit",
		Description:  "Soap, toothpaste, toothbrushes, sanitary pads and towel for one family, one month.",
		Utility:      "Disease prevention in crowded evacuation centers.",
		Category:     "hygiene",
		Price:        9.90,
		Availability: "in_stock",
		Emoji:        "🧼",
	},
	{
		Name:         "Portable Power Bank (20000mAh)",
		Description:  "High-capacity USB power bank with solar trickle charging.",
		Utility:      "Keeps phones alive to reach emergency services and family.",
		Category:     "equipment",
		Price:        32.00,
		Availability: "limited",
		Emoji:        "🔋",
	},
}

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	productRepo := implementation.NewProductRepository(db)
	ctx := context.Background()

	color.Cyan("🌱 Seeding relief product catalog (%d items)\n", len(catalog))

	created, refreshed := 0, 0
	for _, p := range catalog {
		var existing model.Product
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			// Re-seeding an existing product regenerates its embedding so
			// catalog text changes reach the vector index.
			if err := productRepo.DeleteEmbeddingsByProductId(ctx, existing.Id); err != nil {
				color.Red("  ✗ Failed to clear embeddings for %s: %v", p.Name, err)
				continue
			}
			if err := embedProduct(ctx, productRepo, embeddingProvider, existing.Id, p); err != nil {
				color.Red("  ✗ Failed to re-embed %s: %v", p.Name, err)
				continue
			}
			color.Yellow("  ~ %s already exists, embedding refreshed", p.Name)
			refreshed++
			continue
		}

		product := model.Product{
			Id:           uuid.New(),
			Name:         p.Name,
			Description:  p.Description,
			Utility:      p.Utility,
			Category:     p.Category,
			Price:        p.Price,
			Availability: p.Availability,
			Emoji:        p.Emoji,
			Metadata:     datatypes.JSON([]byte(`{}`)),
		}

		if err := productRepo.Create(ctx, &product); err != nil {
			color.Red("  ✗ Failed to create %s: %v", p.Name, err)
			continue
		}

		if err := embedProduct(ctx, productRepo, embeddingProvider, product.Id, p); err != nil {
			color.Red("  ✗ Failed to embed %s: %v", p.Name, err)
			continue
		}

		color.Green("  ✓ %s %s", p.Emoji, p.Name)
		created++
	}

	color.Cyan("\nDone: %d created, %d refreshed\n", created, refreshed)
}

func embedProduct(
	ctx context.Context,
	productRepo contract.ProductRepository,
	embeddingProvider embedding.EmbeddingProvider,
	productId uuid.UUID,
	p seedProduct,
) error {
	document := fmt.Sprintf("%s\n%s\nUtility: %s\nCategory: %s", p.Name, p.Description, p.Utility, p.Category)
	res, err := embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		return err
	}

	emb := model.ProductEmbedding{
		Id:             uuid.New(),
		Document:       document,
		EmbeddingValue: pgvector.NewVector(res.Embedding.Values),
		ProductId:      productId,
	}
	return productRepo.SaveEmbedding(ctx, &emb)
}
