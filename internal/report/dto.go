package report

// MonthUsageResponse is the presentation form of a MonthUsage.
type MonthUsageResponse struct {
	Month  int    `json:"month"`
	Used   string `json:"used"`
	Result string `json:"result"`
}

// CategoryReportResponse is the presentation form of a CategoryReport with
// every derived value computed. UsedAverage is empty before the first month.
type CategoryReportResponse struct {
	Category            string               `json:"category"`
	Months              int                  `json:"months"`
	Budget              string               `json:"budget"`
	BudgetPerMonth      string               `json:"budget_per_month"`
	Used                string               `json:"used"`
	UsedAverage         string               `json:"used_average,omitempty"`
	Leftover            string               `json:"leftover"`
	LeftoverAverage     string               `json:"leftover_average"`
	MonthlyDistribution []MonthUsageResponse `json:"monthly_distribution"`
}

func ToCategoryReportResponse(r *CategoryReport) CategoryReportResponse {
	resp := CategoryReportResponse{
		Category:        r.Category,
		Months:          r.Months,
		Budget:          r.AnnualBudget.StringFixed(2),
		BudgetPerMonth:  r.BudgetPerMonth().StringFixed(2),
		Used:            r.Used().StringFixed(2),
		Leftover:        r.Leftover().StringFixed(2),
		LeftoverAverage: r.LeftoverAverage().StringFixed(2),
	}
	if average, err := r.UsedAverage(); err == nil {
		resp.UsedAverage = average.StringFixed(2)
	}
	for _, usage := range r.MonthlyDistribution() {
		resp.MonthlyDistribution = append(resp.MonthlyDistribution, MonthUsageResponse{
			Month:  usage.Month,
			Used:   usage.Used.StringFixed(2),
			Result: usage.Result.StringFixed(2),
		})
	}
	return resp
}
