package utils

import (
	"testing"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantAndSearchScopes(t *testing.T) {
	SetupTestDB(t)
	acme := CreateTestTenant(t, "Acme Net")
	other := CreateTestTenant(t, "Other Net")

	for _, c := range []models.Category{
		{TenantID: acme.ID, Name: "Fiber Home"},
		{TenantID: acme.ID, Name: "Wireless"},
		{TenantID: other.ID, Name: "Fiber Business"},
	} {
		c := c
		require.NoError(t, config.DB.Create(&c).Error)
	}

	var all []models.Category
	require.NoError(t, config.DB.Scopes(ForTenant(acme.ID)).Find(&all).Error)
	assert.Len(t, all, 2)

	var fiber []models.Category
	require.NoError(t, config.DB.Scopes(ForTenant(acme.ID), Search("FIBER", "name", "description")).Find(&fiber).Error)
	require.Len(t, fiber, 1)
	assert.Equal(t, "Fiber Home", fiber[0].Name)

	var unfiltered []models.Category
	require.NoError(t, config.DB.Scopes(Search("  ", "name")).Find(&unfiltered).Error)
	assert.Len(t, unfiltered, 3)
}
