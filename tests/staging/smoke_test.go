//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type itemDefinitionsResponse struct {
	ItemTags        []string `json:"item_tags"`
	ItemDefinitions []struct {
		ID   string   `json:"id"`
		Tags []string `json:"tags"`
	} `json:"item_definitions"`
}

type collectionResponse struct {
	Items []struct {
		ID    string   `json:"id"`
		Count int      `json:"count"`
		Tags  []string `json:"tags"`
	} `json:"items"`
}

// TestCollectionSmoke walks the main flow end to end: publish a catalog, credit
// items to a player, and read the collection back through the client route.
func TestCollectionSmoke(t *testing.T) {
	// Unique player per run so repeated runs don't interfere.
	playerID := fmt.Sprintf("smoke-%d", time.Now().UnixNano())

	resp, _ := makeRequest(t, "PUT", "/admin/itemdefinitions", "", map[string]interface{}{
		"item_definitions": []map[string]interface{}{
			{"id": "smoke_sword", "tags": []string{"smoke_weapon"}},
			{"id": "smoke_coin", "tags": []string{"smoke_currency"}},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 publishing catalog, got %d", resp.StatusCode)
	}

	resp, body := makeRequest(t, "GET", "/admin/itemdefinitions", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var catalog itemDefinitionsResponse
	if err := json.Unmarshal(body, &catalog); err != nil {
		t.Fatalf("Failed to unmarshal catalog: %v", err)
	}
	found := false
	for _, def := range catalog.ItemDefinitions {
		if def.ID == "smoke_sword" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected to find 'smoke_sword' in the catalog")
	}

	resp, _ = makeRequest(t, "POST", "/admin/collection/"+playerID+"/items", "", map[string]interface{}{
		"item_definition_id": "smoke_coin",
		"item_count":         25,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 crediting items, got %d", resp.StatusCode)
	}

	resp, body = makeRequest(t, "GET", "/client/collection", playerID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 reading collection, got %d", resp.StatusCode)
	}
	var collection collectionResponse
	if err := json.Unmarshal(body, &collection); err != nil {
		t.Fatalf("Failed to unmarshal collection: %v", err)
	}
	if len(collection.Items) != 1 {
		t.Fatalf("Expected 1 collection item, got %d", len(collection.Items))
	}
	if collection.Items[0].ID != "smoke_coin" || collection.Items[0].Count != 25 {
		t.Errorf("Unexpected collection entry: %+v", collection.Items[0])
	}
}

// TestAdminAuthRequired verifies the admin subtree rejects requests without the
// API key while client routes stay reachable.
func TestAdminAuthRequired(t *testing.T) {
	req, err := http.NewRequest("GET", stagingURL+"/admin/itemdefinitions", nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	// Deliberately no X-API-Key header.
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without API key, got %d", resp.StatusCode)
	}
}
