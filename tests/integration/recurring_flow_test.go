package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestRecurringFlow_CreateEditAndSummarize(t *testing.T) {
	app := setupApp(t)
	rentType := app.createType(t, "Rent", "expense")
	salaryType := app.createType(t, "Salary", "income")

	// Monthly rent, three occurrences anchored on the 31st
	rec := app.request("POST", "/api/v1/transactions", fmt.Sprintf(`{
		"amount": "500.00",
		"description": "Rent",
		"direction": "expense",
		"type_id": %q,
		"due_date": "2024-01-31",
		"is_repeating": true,
		"rule": {"frequency": "monthly", "end_condition": "afterOccurrences", "occurrences": 3}
	}`, rentType))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := transactions(t, rec)
	if len(created) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(created))
	}
	masterID := created[0]["id"].(string)
	wantDates := []string{"2024-01-31", "2024-02-29", "2024-03-31"}
	for i, tx := range created {
		if tx["date"] != wantDates[i] {
			t.Errorf("instance %d: expected date %s, got %v", i, wantDates[i], tx["date"])
		}
		if tx["recurring_id"] != masterID {
			t.Errorf("instance %d: expected recurring_id %s, got %v", i, masterID, tx["recurring_id"])
		}
		if tx["type_name"] != "Rent" {
			t.Errorf("instance %d: expected type name Rent, got %v", i, tx["type_name"])
		}
	}
	if created[0]["is_master"] != true || created[1]["is_master"] != false {
		t.Error("expected only the first instance to be master")
	}
	secondID := created[1]["id"].(string)

	// The series is reachable from any member
	rec = app.request("GET", "/api/v1/transactions/"+secondID+"/series", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if series := transactions(t, rec); len(series) != 3 || series[0]["id"] != masterID {
		t.Fatalf("expected 3 members led by the master, got %v", series)
	}

	// Switching the second instance to weekly regenerates the series from it
	edit := fmt.Sprintf(`{
		"amount": "500.00",
		"description": "Rent",
		"direction": "expense",
		"type_id": %q,
		"due_date": "2024-02-29",
		"is_repeating": true,
		"rule": {"frequency": "weekly", "end_condition": "afterOccurrences", "occurrences": 2},
		"expected_version": 1
	}`, rentType)
	rec = app.request("PUT", "/api/v1/transactions/"+secondID, edit)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["regenerated"] != true {
		t.Errorf("expected regenerated=true, got %v", result["regenerated"])
	}
	if result["deleted"].(float64) != 2 {
		t.Errorf("expected 2 deleted, got %v", result["deleted"])
	}
	if len(result["created"].([]interface{})) != 1 {
		t.Errorf("expected 1 created, got %v", result["created"])
	}
	updated := result["updated"].(map[string]interface{})
	if updated["is_master"] != true || updated["recurring_id"] != secondID || updated["version"].(float64) != 2 {
		t.Errorf("expected the edited instance to become master at version 2, got %v", updated)
	}

	rec = app.request("GET", "/api/v1/transactions/"+masterID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected old master to be gone, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/transactions/"+secondID+"/series", "")
	series := transactions(t, rec)
	if len(series) != 2 {
		t.Fatalf("expected 2 members after regeneration, got %d", len(series))
	}
	if series[0]["id"] != secondID || series[1]["date"] != "2024-03-07" {
		t.Errorf("unexpected regenerated series %v", series)
	}

	// Replaying the same edit with the old version is rejected
	rec = app.request("PUT", "/api/v1/transactions/"+secondID, edit)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	// One salary payment in February
	rec = app.request("POST", "/api/v1/transactions", fmt.Sprintf(`{
		"amount": "1000",
		"description": "Salary",
		"direction": "income",
		"type_id": %q,
		"due_date": "2024-02-05"
	}`, salaryType))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/summary?period=range&start_date=2024-02-01&end_date=2024-02-29", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)
	for field, want := range map[string]string{
		"total_income":  "1000",
		"total_expense": "500",
		"balance":       "500",
		"savings_rate":  "50",
	} {
		if summary[field] != want {
			t.Errorf("expected %s %s, got %v", field, want, summary[field])
		}
	}
	if summary["count"].(float64) != 2 {
		t.Errorf("expected 2 transactions in February, got %v", summary["count"])
	}

	// Paginated listing sees everything, newest first
	rec = app.request("GET", "/api/v1/transactions?page_size=2", "")
	page := parseJSON(t, rec)
	if page["total_items"].(float64) != 3 || page["total_pages"].(float64) != 2 {
		t.Errorf("expected 3 items over 2 pages, got %v", page)
	}
	first := page["data"].([]interface{})[0].(map[string]interface{})
	if first["date"] != "2024-03-07" {
		t.Errorf("expected newest transaction first, got %v", first["date"])
	}
}

func TestRecurringFlow_EditWithoutRuleChangeKeepsSeries(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/transactions", `{
		"amount": "15.99",
		"description": "Streaming",
		"direction": "expense",
		"due_date": "2024-05-10",
		"is_repeating": true,
		"rule": {"frequency": "monthly", "end_condition": "onDate", "end_date": "2024-07-10"}
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := transactions(t, rec)
	if len(created) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(created))
	}
	masterID := created[0]["id"].(string)

	rec = app.request("PUT", "/api/v1/transactions/"+masterID, `{
		"amount": "17.99",
		"description": "Streaming",
		"direction": "expense",
		"due_date": "2024-05-10",
		"is_repeating": true,
		"rule": {"frequency": "monthly", "end_condition": "onDate", "end_date": "2024-07-10"}
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if result := parseJSON(t, rec); result["regenerated"] != false {
		t.Errorf("expected a plain update, got %v", result)
	}

	rec = app.request("GET", "/api/v1/transactions/"+masterID+"/series", "")
	if series := transactions(t, rec); len(series) != 3 {
		t.Errorf("expected the series to keep 3 members, got %d", len(series))
	}
}

func TestRecurringFlow_DeleteSingleInstance(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/transactions", `{
		"amount": "20",
		"description": "Gym",
		"direction": "expense",
		"due_date": "2024-01-01",
		"is_repeating": true,
		"rule": {"frequency": "weekly", "end_condition": "afterOccurrences", "occurrences": 4}
	}`)
	created := transactions(t, rec)
	third := created[2]["id"].(string)

	rec = app.request("DELETE", "/api/v1/transactions/"+third, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/transactions/"+created[0]["id"].(string)+"/series", "")
	if series := transactions(t, rec); len(series) != 3 {
		t.Errorf("expected 3 remaining members, got %d", len(series))
	}

	rec = app.request("DELETE", "/api/v1/transactions/"+third, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestRecurringFlow_Rejections(t *testing.T) {
	app := setupApp(t)
	salaryType := app.createType(t, "Salary", "income")

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "type of the other direction",
			body:       fmt.Sprintf(`{"amount":"10","description":"x","direction":"expense","type_id":%q,"due_date":"2024-01-01"}`, salaryType),
			wantStatus: http.StatusBadRequest,
			wantCode:   "TYPE_DIRECTION_MISMATCH",
		},
		{
			name:       "zero amount",
			body:       `{"amount":"0","description":"x","direction":"expense","due_date":"2024-01-01"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "repeating without frequency",
			body:       `{"amount":"10","description":"x","direction":"expense","due_date":"2024-01-01","is_repeating":true,"rule":{"end_condition":"never"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request("POST", "/api/v1/transactions", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			errObj := parseJSON(t, rec)["error"].(map[string]interface{})
			if errObj["code"] != tt.wantCode {
				t.Errorf("expected code %s, got %v", tt.wantCode, errObj["code"])
			}
		})
	}

	var count int64
	app.DB.Table("transactions").Count(&count)
	if count != 0 {
		t.Errorf("expected nothing written, found %d transactions", count)
	}
}

func TestTransactionType_CategoryLockedWhileUsed(t *testing.T) {
	app := setupApp(t)
	salaryType := app.createType(t, "Salary", "income")

	rec := app.request("POST", "/api/v1/transactions", fmt.Sprintf(`{
		"amount": "1000",
		"description": "Salary",
		"direction": "income",
		"type_id": %q,
		"due_date": "2024-01-05",
		"is_repeating": true,
		"rule": {"frequency": "monthly", "end_condition": "afterOccurrences", "occurrences": 3}
	}`, salaryType))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("PUT", "/api/v1/transaction-types/"+salaryType, `{"category":"expense"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := parseJSON(t, rec)["error"].(map[string]interface{})["code"]; code != "TRANSACTION_TYPE_IN_USE" {
		t.Errorf("expected TRANSACTION_TYPE_IN_USE, got %v", code)
	}

	rec = app.request("GET", "/api/v1/transaction-types/"+salaryType, "")
	tt := parseJSON(t, rec)["transaction_type"].(map[string]interface{})
	if tt["category"] != "income" {
		t.Errorf("expected category to stay income, got %v", tt["category"])
	}
}

func TestAuth_RequiresToken(t *testing.T) {
	app := setupApp(t)
	app.Token = ""

	rec := app.request("GET", "/api/v1/transactions", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
