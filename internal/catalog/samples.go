package catalog

import "github.com/Makepad-fr/travelgrid/internal/model"

// Samples are the destinations SeedIfEmpty inserts, in insertion order.
func Samples() []model.Fields {
	return []model.Fields{
		{
			Title:       "Praia do Forte",
			Description: "Mar calmo e águas claras",
			Category:    "Praia",
			Image:       "https://picsum.photos/seed/praia/800/600",
			Country:     "Brasil",
			Year:        2023,
		},
		{
			Title:       "Sevilha",
			Description: "Centro histórico e Plaza de España",
			Category:    "Cidade",
			Image:       "https://picsum.photos/seed/sevilha/800/600",
			Country:     "Espanha",
			Year:        2022,
		},
		{
			Title:       "Chiang Rai",
			Description: "Templo Branco e cafés de jardim",
			Category:    "Cultural",
			Image:       "https://picsum.photos/seed/chiangrai/800/600",
			Country:     "Tailândia",
			Year:        2024,
		},
	}
}
