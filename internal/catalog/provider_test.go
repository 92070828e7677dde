package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFile(t *testing.T) string {
	t.Helper()

	content := `cars:
  - id: 1
    name: "Tesla Model 3"
    category: "Electric"
    price_per_day: 120
    seats: 5
    transmission: "Automatic"
    features: ["Autopilot", "Wireless Charging"]
    rating: 4.8
  - id: 2
    name: "Jeep Wrangler"
    category: "SUV"
    price_per_day: 150
    seats: 5
    transmission: "Manual"
    features: ["4x4", "Removable Top"]
    rating: 4.6
`
	path := filepath.Join(t.TempDir(), "cars.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return path
}

func TestStaticProviderLoad(t *testing.T) {
	p, err := NewStaticProvider(writeCatalogFile(t))
	if err != nil {
		t.Fatalf("NewStaticProvider failed: %v", err)
	}

	cars := p.List()
	if len(cars) != 2 {
		t.Fatalf("expected 2 cars, got %d", len(cars))
	}
	if cars[0].Name != "Tesla Model 3" || cars[0].PricePerDay != 120 {
		t.Errorf("unexpected first car: %+v", cars[0])
	}

	car, err := p.Get(2)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if car.Name != "Jeep Wrangler" {
		t.Errorf("expected Jeep Wrangler, got %s", car.Name)
	}

	if _, err := p.Get(99); err == nil {
		t.Error("expected error for unknown car id")
	}
}

// List 返回的是副本，调用方修改不影响目录
func TestListReturnsCopy(t *testing.T) {
	p, err := NewStaticProvider(writeCatalogFile(t))
	if err != nil {
		t.Fatalf("NewStaticProvider failed: %v", err)
	}

	cars := p.List()
	cars[0].Name = "mutated"

	if p.List()[0].Name == "mutated" {
		t.Error("List must return a copy of the catalog")
	}
}

func TestSearch(t *testing.T) {
	p, err := NewStaticProvider(writeCatalogFile(t))
	if err != nil {
		t.Fatalf("NewStaticProvider failed: %v", err)
	}

	// 按名称
	if got := p.Search("tesla"); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("search by name failed: %+v", got)
	}
	// 按类别
	if got := p.Search("suv"); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("search by category failed: %+v", got)
	}
	// 按配置项
	if got := p.Search("4x4"); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("search by feature failed: %+v", got)
	}
	// 无结果
	if got := p.Search("helicopter"); len(got) != 0 {
		t.Errorf("expected no results, got %+v", got)
	}
	// 空查询
	if got := p.Search("  "); got != nil {
		t.Errorf("blank query must return nil, got %+v", got)
	}
}

func TestDuplicateCarIDRejected(t *testing.T) {
	content := `cars:
  - id: 1
    name: "Car A"
    category: "Sedan"
  - id: 1
    name: "Car B"
    category: "SUV"
`
	path := filepath.Join(t.TempDir(), "cars.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}

	if _, err := NewStaticProvider(path); err == nil {
		t.Error("expected error for duplicate car id")
	}
}
