package services

import (
	"testing"
	"time"

	"pencil/internal/insights"
	"pencil/internal/models"
	"pencil/internal/testutil"
)

func TestExpenseSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSummaryService(db)

	testutil.CreateTestExpense(t, db, "100.10", models.ExpenseCategoryFood, models.Today())
	testutil.CreateTestExpense(t, db, "0.20", models.ExpenseCategoryFood, models.Today())
	testutil.CreateTestExpense(t, db, "50.00", models.ExpenseCategoryTransport, models.Today())
	testutil.CreateTestExpense(t, db, "50.00", models.ExpenseCategoryEducation, models.Today())

	summary, err := svc.ExpenseSummary()
	testutil.AssertNoError(t, err)

	if summary.TotalExpenses != 200.3 {
		t.Errorf("expected total 200.3, got %v", summary.TotalExpenses)
	}
	if len(summary.ByCategory) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(summary.ByCategory))
	}
	want := []CategoryTotal{
		{Category: "food", Total: 100.3, Count: 2},
		{Category: "education", Total: 50, Count: 1},
		{Category: "transport", Total: 50, Count: 1},
	}
	for i, w := range want {
		if summary.ByCategory[i] != w {
			t.Errorf("position %d: expected %+v, got %+v", i, w, summary.ByCategory[i])
		}
	}
}

func TestIncomeSummary(t *testing.T) {
	t.Run("grouped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)

		testutil.CreateTestIncome(t, db, "1000.00", models.IncomeSourceSalary, models.Today())
		testutil.CreateTestIncome(t, db, "250.00", models.IncomeSourceFreelance, models.Today())

		summary, err := svc.IncomeSummary()
		testutil.AssertNoError(t, err)
		if summary.TotalIncome != 1250 {
			t.Errorf("expected total 1250, got %v", summary.TotalIncome)
		}
		if len(summary.BySource) != 2 || summary.BySource[0].Source != "salary" {
			t.Errorf("expected salary first, got %+v", summary.BySource)
		}
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)

		summary, err := svc.IncomeSummary()
		testutil.AssertNoError(t, err)
		if summary.TotalIncome != 0 {
			t.Errorf("expected 0, got %v", summary.TotalIncome)
		}
		if summary.BySource == nil || len(summary.BySource) != 0 {
			t.Errorf("expected empty non-nil breakdown, got %v", summary.BySource)
		}
	})
}

func TestMonthly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSummaryService(db)

	testutil.CreateTestExpense(t, db, "10.00", models.ExpenseCategoryFood, models.NewDate(2024, time.March, 3))
	testutil.CreateTestExpense(t, db, "5.50", models.ExpenseCategoryFood, models.NewDate(2024, time.March, 28))
	testutil.CreateTestExpense(t, db, "7.00", models.ExpenseCategoryFood, models.NewDate(2024, time.January, 15))
	testutil.CreateTestIncome(t, db, "300.00", models.IncomeSourceSalary, models.NewDate(2023, time.December, 31))

	expenses, err := svc.ExpenseMonthly()
	testutil.AssertNoError(t, err)

	want := []MonthlyTotal{
		{Month: "2024-01-01", Total: 7},
		{Month: "2024-03-01", Total: 15.5},
	}
	if len(expenses) != len(want) {
		t.Fatalf("expected %d months, got %+v", len(want), expenses)
	}
	for i, w := range want {
		if expenses[i] != w {
			t.Errorf("position %d: expected %+v, got %+v", i, w, expenses[i])
		}
	}

	income, err := svc.IncomeMonthly()
	testutil.AssertNoError(t, err)
	if len(income) != 1 || income[0].Month != "2023-12-01" || income[0].Total != 300 {
		t.Errorf("unexpected income monthly: %+v", income)
	}
}

func TestOverview(t *testing.T) {
	t.Run("with_data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)

		testutil.CreateTestIncome(t, db, "1000.00", models.IncomeSourceSalary, models.Today())
		testutil.CreateTestExpense(t, db, "400.00", models.ExpenseCategoryFood, models.Today())
		testutil.CreateTestExpense(t, db, "100.00", models.ExpenseCategoryTransport, models.Today())

		overview, err := svc.Overview()
		testutil.AssertNoError(t, err)

		if overview.TotalIncome != 1000 || overview.TotalExpenses != 500 || overview.Balance != 500 {
			t.Errorf("unexpected totals: %+v", overview)
		}
		if overview.SavingsRate != 50 {
			t.Errorf("expected savings rate 50, got %v", overview.SavingsRate)
		}
		if len(overview.ExpenseByCategory) != 2 || overview.ExpenseByCategory[0].Category != "food" {
			t.Errorf("expected food first, got %+v", overview.ExpenseByCategory)
		}
		if len(overview.IncomeBySource) != 1 {
			t.Errorf("expected 1 source, got %+v", overview.IncomeBySource)
		}
	})

	t.Run("no_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)

		overview, err := svc.Overview()
		testutil.AssertNoError(t, err)

		if overview.TotalIncome != 0 || overview.TotalExpenses != 0 || overview.Balance != 0 || overview.SavingsRate != 0 {
			t.Errorf("expected zero overview, got %+v", overview)
		}
		if overview.ExpenseByCategory == nil || overview.IncomeBySource == nil {
			t.Error("expected empty non-nil breakdowns")
		}
	})
}

func TestAggregates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSummaryService(db)

	testutil.CreateTestIncome(t, db, "1000.00", models.IncomeSourceSalary, models.Today())
	testutil.CreateTestExpense(t, db, "250.00", models.ExpenseCategoryFood, models.Today())
	testutil.CreateTestExpense(t, db, "150.00", models.ExpenseCategoryFood, models.Today())
	testutil.CreateTestExpense(t, db, "100.00", models.ExpenseCategoryTransport, models.Today())
	for i := 0; i < 4; i++ {
		testutil.CreateTestExpense(t, db, "1.00", models.ExpenseCategoryOther, models.Today())
	}

	agg, err := svc.Aggregates()
	testutil.AssertNoError(t, err)

	if agg.Categories[0].Category != "food" || agg.Categories[0].Concern != insights.TierHigh {
		t.Errorf("expected food with high concern first, got %+v", agg.Categories[0])
	}
	if agg.Categories[0].Percentage.String() != "40" {
		t.Errorf("expected food at 40%%, got %s", agg.Categories[0].Percentage)
	}
	if len(agg.TopExpenses) != 5 {
		t.Fatalf("expected 5 top expenses, got %d", len(agg.TopExpenses))
	}
	if agg.TopExpenses[0].Amount.String() != "250" {
		t.Errorf("expected largest expense 250 first, got %s", agg.TopExpenses[0].Amount)
	}
	if len(agg.IncomeSources) != 1 || agg.IncomeSources[0].Name != "salary" {
		t.Errorf("unexpected income sources: %+v", agg.IncomeSources)
	}
}
