package repositories

import "fireguard/internal/models"

// mockProducts is the static fallback catalog served when the sheet store is
// unconfigured or unreachable. It is read-only and never written back.
var mockProducts = []models.Product{
	{
		ID:               "PROD-001",
		Name:             "ABC Dry Powder Fire Extinguisher (6kg)",
		Category:         "Extinguishers",
		Type:             "ABC Powder",
		Capacity:         "6kg",
		ShortDescription: "Versatile fire extinguisher suitable for Class A, B, and C fires.",
		LongDescription:  "Premium quality ABC dry powder fire extinguisher with ISI certification. Suitable for offices, homes, vehicles, and industrial settings. Features a durable metal body with anti-corrosion coating.",
		ImageURL:         "https://images.unsplash.com/photo-1582132249535-46d467491d92?auto=format&fit=crop&q=80&w=600",
		Price:            4500,
		Status:           models.ProductStatusActive,
		CreatedAt:        "2024-01-15",
	},
	{
		ID:               "PROD-002",
		Name:             "CO2 Fire Extinguisher (4.5kg)",
		Category:         "Extinguishers",
		Type:             "CO2",
		Capacity:         "4.5kg",
		ShortDescription: "Ideal for electrical fires and server rooms.",
		LongDescription:  "Carbon dioxide fire extinguisher designed for electrical equipment and flammable liquid fires. Leaves no residue, making it perfect for data centers and laboratories.",
		ImageURL:         "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?auto=format&fit=crop&q=80&w=600",
		Price:            6800,
		Status:           models.ProductStatusActive,
		CreatedAt:        "2024-01-15",
	},
	{
		ID:               "PROD-003",
		Name:             "Smart Smoke Detector Pro",
		Category:         "Alarms",
		Type:             "Photoelectric",
		Capacity:         "N/A",
		ShortDescription: "WiFi-enabled smoke detector with mobile alerts.",
		LongDescription:  "Advanced photoelectric smoke detector with WiFi connectivity. Sends instant alerts to your smartphone. Features 10-year battery life and easy ceiling mount installation.",
		ImageURL:         "https://images.unsplash.com/photo-1635322966219-b75ed372eb01?auto=format&fit=crop&q=80&w=600",
		Price:            2800,
		Status:           models.ProductStatusActive,
		CreatedAt:        "2024-01-16",
	},
	{
		ID:               "PROD-004",
		Name:             "Fire Hydrant Landing Valve",
		Category:         "Hydrants",
		Type:             "Landing Valve",
		Capacity:         "63mm",
		ShortDescription: "ISI marked hydrant valve for building installations.",
		LongDescription:  "High-quality gunmetal landing valve conforming to IS:5290. Suitable for wet and dry riser systems. Includes coupling and blank cap.",
		ImageURL:         "https://images.unsplash.com/photo-1545259742-b839d208bb24?auto=format&fit=crop&q=80&w=600",
		Price:            3200,
		Status:           models.ProductStatusActive,
		CreatedAt:        "2024-01-17",
	},
	{
		ID:               "PROD-005",
		Name:             "Fire Safety Signage Pack",
		Category:         "Signage",
		Type:             "Glow Sign",
		Capacity:         "Set of 10",
		ShortDescription: "Photoluminescent safety signs for emergency exits.",
		LongDescription:  "Complete set of 10 photoluminescent fire safety signs including exit signs, fire extinguisher location markers, and evacuation route indicators. Complies with NBC 2016 requirements.",
		ImageURL:         "https://images.unsplash.com/photo-1558449028-b53a39d100fc?auto=format&fit=crop&q=80&w=600",
		Price:            1200,
		Status:           models.ProductStatusActive,
		CreatedAt:        "2024-01-18",
	},
}

// MockProductSet returns a copy of the fallback catalog, optionally filtered
// to active products.
func MockProductSet(includeDisabled bool) []models.Product {
	out := make([]models.Product, 0, len(mockProducts))
	for _, p := range mockProducts {
		if !includeDisabled && p.Status != models.ProductStatusActive {
			continue
		}
		out = append(out, p)
	}
	return out
}
