package services

import (
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/noora/internal/apperr"
	"github.com/example/noora/internal/models"
)

// testDB connects to the database named by TEST_DATABASE_URL and resets the tables
// these tests touch. Tests that need stored state skip when the variable is unset.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Subcategory{},
		&models.VariantGroup{},
		&models.Product{},
		&models.Attribute{},
		&models.AttributeOption{},
		&models.ProductAttributeValue{},
	))

	for _, table := range []string{
		"product_attribute_options",
		"product_attribute_values",
		"attribute_options",
		"attributes",
		"product_subcategories",
		"products",
		"subcategories",
		"variant_groups",
		"categories",
	} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	return db
}

func createCategory(t *testing.T, db *gorm.DB) models.Category {
	t.Helper()
	category := models.Category{Name: "Laptops", Slug: "laptops-" + uuid.NewString()}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID) models.Product {
	t.Helper()
	product := models.Product{
		Name:         "Test Laptop",
		Price:        decimal.RequireFromString("999.99"),
		Availability: models.AvailabilityInStock,
		Currency:     models.CurrencyUSD,
		CategoryID:   categoryID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestSetValue_NumberReplaceAndIdempotence(t *testing.T) {
	db := testDB(t)
	attrs := NewAttributeService(db)
	specs := NewSpecificationService(db)

	category := createCategory(t, db)
	product := createProduct(t, db, category.ID)
	attr, err := attrs.Define(DefineAttributeInput{
		ScopeType: models.ScopeCategory,
		ScopeID:   category.ID,
		Key:       "weight",
		Label:     "Weight",
		DataType:  models.DataTypeNumber,
	})
	require.NoError(t, err)

	_, err = specs.SetValue(product.ID, attr.ID, RawValue{Value: "1.5"})
	require.NoError(t, err)

	stored, err := specs.SetValue(product.ID, attr.ID, RawValue{Value: "2.75"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.ProductAttributeValue{}).
		Where("product_id = ? AND attribute_id = ?", product.ID, attr.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count, "re-setting must not grow the value table")
	require.NotNil(t, stored.ValueNumber)
	assert.True(t, stored.ValueNumber.Equal(decimal.RequireFromString("2.75")))

	// Repeating the same write changes nothing.
	again, err := specs.SetValue(product.ID, attr.ID, RawValue{Value: "2.75"})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, again.ID)
	require.NoError(t, db.Model(&models.ProductAttributeValue{}).
		Where("product_id = ? AND attribute_id = ?", product.ID, attr.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetValue_MultiSelectReplacesOptionsWholesale(t *testing.T) {
	db := testDB(t)
	attrs := NewAttributeService(db)
	specs := NewSpecificationService(db)

	category := createCategory(t, db)
	product := createProduct(t, db, category.ID)
	attr, err := attrs.Define(DefineAttributeInput{
		ScopeType: models.ScopeCategory,
		ScopeID:   category.ID,
		Key:       "ports",
		Label:     "Ports",
		DataType:  models.DataTypeMultiSelect,
	})
	require.NoError(t, err)

	optionIDs := make(map[string]uuid.UUID)
	for i, value := range []string{"usb-a", "usb-c", "hdmi"} {
		option, err := attrs.AddOption(attr.ID, value, value, i)
		require.NoError(t, err)
		optionIDs[value] = option.ID
	}

	_, err = specs.SetValue(product.ID, attr.ID, RawValue{Values: []string{"usb-a", "usb-c"}})
	require.NoError(t, err)

	stored, err := specs.SetValue(product.ID, attr.ID, RawValue{Values: []string{"usb-c", "hdmi"}})
	require.NoError(t, err)

	var joined []uuid.UUID
	require.NoError(t, db.Table("product_attribute_options").
		Where("product_attribute_value_id = ?", stored.ID).
		Pluck("attribute_option_id", &joined).Error)
	assert.ElementsMatch(t, []uuid.UUID{optionIDs["usb-c"], optionIDs["hdmi"]}, joined,
		"the options join must carry only the latest selections")

	var count int64
	require.NoError(t, db.Model(&models.ProductAttributeValue{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Idempotent re-set leaves the join untouched.
	_, err = specs.SetValue(product.ID, attr.ID, RawValue{Values: []string{"usb-c", "hdmi"}})
	require.NoError(t, err)
	require.NoError(t, db.Table("product_attribute_options").
		Where("product_attribute_value_id = ?", stored.ID).
		Pluck("attribute_option_id", &joined).Error)
	assert.ElementsMatch(t, []uuid.UUID{optionIDs["usb-c"], optionIDs["hdmi"]}, joined)
}

func TestDefine_ConcurrentGetOrCreate(t *testing.T) {
	db := testDB(t)
	attrs := NewAttributeService(db)
	category := createCategory(t, db)

	input := DefineAttributeInput{
		ScopeType: models.ScopeCategory,
		ScopeID:   category.ID,
		Key:       "color",
		Label:     "Color",
		DataType:  models.DataTypeText,
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = attrs.Define(input)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "definition %d", i)
	}

	var count int64
	require.NoError(t, db.Model(&models.Attribute{}).
		Where("scope_type = ? AND scope_id = ? AND key = ?",
			input.ScopeType, input.ScopeID, input.Key).
		Count(&count).Error)
	assert.EqualValues(t, 1, count, "every racer must converge on one definition")

	// A conflicting data type for the settled key is rejected.
	conflicting := input
	conflicting.DataType = models.DataTypeNumber
	_, err := attrs.Define(conflicting)
	require.Error(t, err)
	assert.Equal(t, apperr.KindSchemaConflict, apperr.KindOf(err))
}

func TestListProducts_UnknownSpecKeyIgnored(t *testing.T) {
	db := testDB(t)
	attrs := NewAttributeService(db)
	specs := NewSpecificationService(db)
	variants := NewVariantService(db)
	catalog := NewCatalogService(db, attrs, specs, variants)

	category := createCategory(t, db)
	product := createProduct(t, db, category.ID)

	items, total, err := catalog.ListProducts(ProductFilter{
		SpecFilters: map[string]string{"never_defined": "anything"},
	}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ID)
}
