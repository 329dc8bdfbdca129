package repository

import "github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/model"

// servicePackages is the fixed consulting/managed-services offering table.
// Service packages change rarely enough that they live in code rather than
// in content files.
var servicePackages = []model.ServicePackage{
	{
		ID:          "consulting-hourly",
		Name:        "Cloud Consulting (Hourly)",
		Description: "Expert Azure consulting and architecture guidance",
		Price:       model.Money{Amount: 175, Currency: "EUR"},
		Unit:        "hour",
		MinHours:    4,
	},
	{
		ID:          "consulting-day",
		Name:        "Cloud Consulting (Day Rate)",
		Description: "Full day on-site or remote consulting",
		Price:       model.Money{Amount: 1295, Currency: "EUR"},
		Unit:        "day",
		Savings:     "7% discount vs hourly",
	},
	{
		ID:          "health-check",
		Name:        "Azure Health Check",
		Description: "Comprehensive Azure environment assessment",
		Price:       model.Money{Amount: 2495, Currency: "EUR"},
		Unit:        "package",
		Includes: []string{
			"Security posture review",
			"Cost optimization analysis",
			"Architecture assessment",
			"Best practices recommendations",
			"Executive summary report",
		},
	},
	{
		ID:          "managed-services-starter",
		Name:        "Managed Services - Starter",
		Description: "Basic Azure management and monitoring",
		Price:       model.Money{Amount: 995, Currency: "EUR"},
		Unit:        "month",
		Includes: []string{
			"24/7 monitoring",
			"Monthly cost reports",
			"Security updates",
			"Email support (business hours)",
		},
	},
	{
		ID:          "managed-services-professional",
		Name:        "Managed Services - Professional",
		Description: "Full Azure management with priority support",
		Price:       model.Money{Amount: 2495, Currency: "EUR"},
		Unit:        "month",
		Includes: []string{
			"Everything in Starter",
			"Priority phone support",
			"Quarterly architecture reviews",
			"Performance optimization",
			"Disaster recovery planning",
		},
	},
}
