package main

import (
	"fmt"
	"log"

	"github.com/dgraph-io/ristretto"

	"gobudget/pkg/ledger"
)

// Dashboard payloads are the only cached responses. The aggregation walks
// every expense of a budget; a snapshot stays valid until a write to the
// budget clears it.
var dashCache *ristretto.Cache

func initCache() {
	var err error
	dashCache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 1000,
		MaxCost:     1000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func dashboardCacheKey(budgetID uint) string {
	return fmt.Sprintf("dashboard:%d", budgetID)
}

func getCachedDashboard(budgetID uint) (*ledger.Dashboard, bool) {
	if dashCache == nil {
		return nil, false
	}
	v, ok := dashCache.Get(dashboardCacheKey(budgetID))
	if !ok {
		return nil, false
	}
	d, ok := v.(*ledger.Dashboard)
	return d, ok
}

func setCachedDashboard(budgetID uint, d *ledger.Dashboard) {
	if dashCache == nil {
		return
	}
	dashCache.Set(dashboardCacheKey(budgetID), d, 1)
}

// clearDashboardCache drops the cached payload for one budget. Called by
// every write path touching that budget's accounts or expenses.
func clearDashboardCache(budgetID uint) {
	if dashCache == nil {
		return
	}
	dashCache.Del(dashboardCacheKey(budgetID))
}
