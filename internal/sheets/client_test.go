package sheets

import (
	"fmt"
	"testing"
)

// TestClient tests the basic client operations
func TestClient(t *testing.T) {
	// Test client creation with nil service (we can't test Google API directly)
	client := &Client{service: nil}

	var api SheetsAPI = client
	_ = api
}

// TestSheetOperationLogic tests the business logic without external dependencies
func TestSheetOperationLogic(t *testing.T) {
	t.Run("RangeFormatting", func(t *testing.T) {
		testCases := []struct {
			sheetName     string
			cols          int
			expectedClear string
		}{
			{FilmsSheet, 6, "'Films'!A:F"},
			{DirectorsSheet, 2, "'Top Directors'!A:B"},
			{TopFilmsSheet, 2, "'Top Films'!A:B"},
			{StatusSheet, 28, "'Status'!A:AB"},
		}

		for _, tc := range testCases {
			actual := fmt.Sprintf("'%s'!A:%s", tc.sheetName, columnLetter(tc.cols))
			if actual != tc.expectedClear {
				t.Errorf("Expected range %s, got %s", tc.expectedClear, actual)
			}
		}
	})

	t.Run("ColumnLetters", func(t *testing.T) {
		testCases := []struct {
			n        int
			expected string
		}{
			{0, "A"},
			{1, "A"},
			{6, "F"},
			{26, "Z"},
			{27, "AA"},
			{52, "AZ"},
			{53, "BA"},
			{702, "ZZ"},
			{703, "AAA"},
		}

		for _, tc := range testCases {
			if got := columnLetter(tc.n); got != tc.expected {
				t.Errorf("columnLetter(%d) = %s, expected %s", tc.n, got, tc.expected)
			}
		}
	})

	t.Run("CapacityCalculations", func(t *testing.T) {
		// Test sheet capacity expansion logic
		testCases := []struct {
			currentRows  int
			currentCols  int
			requiredRows int
			requiredCols int
			needsResize  bool
			expectedRows int
			expectedCols int
		}{
			{100, 20, 50, 10, false, 100, 20}, // No resize needed
			{100, 20, 150, 25, true, 250, 35}, // Both dimensions need resize
			{100, 20, 120, 15, true, 220, 20}, // Only rows need resize
			{100, 20, 80, 25, true, 100, 35},  // Only cols need resize
		}

		for _, tc := range testCases {
			newRows, newCols, needsResize := planCapacity(tc.currentRows, tc.currentCols, tc.requiredRows, tc.requiredCols)

			if needsResize != tc.needsResize {
				t.Errorf("Expected needsResize %v, got %v", tc.needsResize, needsResize)
			}
			if newRows != tc.expectedRows {
				t.Errorf("Expected new rows %d, got %d", tc.expectedRows, newRows)
			}
			if newCols != tc.expectedCols {
				t.Errorf("Expected new cols %d, got %d", tc.expectedCols, newCols)
			}
		}
	})
}
