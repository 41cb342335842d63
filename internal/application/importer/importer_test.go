package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/application/importer"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

type fakeCompanies struct {
	repository.CompanyRepository
	byID map[string]*entity.Company
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.byID[id], nil
}

type fakeCustomers struct {
	repository.CustomerRepository
	byCode map[string]*entity.Customer // companyID + "/" + centerCode
}

func custKey(companyID, code string) string { return companyID + "/" + code }

func (f *fakeCustomers) GetByCode(_ context.Context, companyID, code string) (*entity.Customer, error) {
	return f.byCode[custKey(companyID, code)], nil
}

func (f *fakeCustomers) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.Customer, error) {
	for _, c := range f.byCode {
		if c.ID == id && scope.Allows(c.CompanyID) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomers) Create(_ context.Context, c *entity.Customer) error {
	f.byCode[custKey(c.CompanyID, c.CenterCode)] = c
	return nil
}

func (f *fakeCustomers) Update(_ context.Context, c *entity.Customer) error {
	f.byCode[custKey(c.CompanyID, c.CenterCode)] = c
	return nil
}

type fakeItems struct {
	repository.ItemRepository
	byCode map[string]*entity.Item
}

func (f *fakeItems) GetByCode(_ context.Context, companyID, code string) (*entity.Item, error) {
	return f.byCode[custKey(companyID, code)], nil
}

func (f *fakeItems) Create(_ context.Context, i *entity.Item) error {
	f.byCode[custKey(i.CompanyID, i.ItemCode)] = i
	return nil
}

func (f *fakeItems) Update(_ context.Context, i *entity.Item) error {
	f.byCode[custKey(i.CompanyID, i.ItemCode)] = i
	return nil
}

type fakeManufacturers struct {
	repository.ManufacturerRepository
	byCode map[string]*entity.Manufacturer
}

func (f *fakeManufacturers) GetByCode(_ context.Context, code string) (*entity.Manufacturer, error) {
	return f.byCode[code], nil
}

type fakeProfiles struct {
	repository.UserProfileRepository
	byEmail map[string]*entity.UserProfile
	updated []*entity.UserProfile
}

func (f *fakeProfiles) GetByUserEmail(_ context.Context, scope tenant.Scope, email string) (*entity.UserProfile, error) {
	p := f.byEmail[email]
	if p == nil || p.CompanyID == nil || !scope.Allows(*p.CompanyID) {
		return nil, nil
	}
	return p, nil
}

func (f *fakeProfiles) Update(_ context.Context, p *entity.UserProfile) error {
	f.updated = append(f.updated, p)
	return nil
}

type fixture struct {
	im            *importer.Importer
	customers     *fakeCustomers
	items         *fakeItems
	manufacturers *fakeManufacturers
	profiles      *fakeProfiles
}

func strPtr(s string) *string { return &s }

func newFixture() *fixture {
	f := &fixture{
		customers:     &fakeCustomers{byCode: map[string]*entity.Customer{}},
		items:         &fakeItems{byCode: map[string]*entity.Item{}},
		manufacturers: &fakeManufacturers{byCode: map[string]*entity.Manufacturer{}},
		profiles:      &fakeProfiles{byEmail: map[string]*entity.UserProfile{}},
	}
	companies := &fakeCompanies{byID: map[string]*entity.Company{
		"company-1": {
			ID: "company-1", Name: "Acme Trading", Code: "ACME",
			Domains: []string{"acme.example"}, OrderPrefix: "ACM", IsActive: true,
		},
	}}
	f.im = importer.New(companies, f.customers, f.items, f.manufacturers, f.profiles, zerolog.Nop())
	return f
}

func operator() policy.Principal {
	return policy.Principal{
		UserID:       "user-op",
		ProfileID:    "profile-op",
		Role:         entity.RoleInternalAdmin,
		MemberStatus: entity.MemberActive,
	}
}

func TestImportCustomersCreatesThenUpdates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	csvData := strings.Join([]string{
		"center_code,center_name,postal_code,prefecture,city,address1,address2,is_billing_center,billing_center_code",
		"HQ,Headquarters,100-0001,Tokyo,Chiyoda,1-1-1,,true,",
		"WH1,Warehouse East,279-0001,Chiba,Urayasu,2-2-2,,false,HQ",
	}, "\n")

	res, err := f.im.ImportCustomers(ctx, operator(), "company-1", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.Updated)
	assert.Empty(t, res.Errors)

	hq := f.customers.byCode[custKey("company-1", "HQ")]
	require.NotNil(t, hq)
	assert.True(t, hq.IsBillingCenter)

	wh := f.customers.byCode[custKey("company-1", "WH1")]
	require.NotNil(t, wh)
	require.NotNil(t, wh.BillingCenterID)
	assert.Equal(t, hq.ID, *wh.BillingCenterID)

	// Re-importing the same file upserts by center_code.
	res, err = f.im.ImportCustomers(ctx, operator(), "company-1", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 2, res.Updated)
}

func TestImportCustomersCollectsRowErrors(t *testing.T) {
	f := newFixture()

	csvData := strings.Join([]string{
		"center_code,center_name,is_billing_center,billing_center_code",
		"HQ,Headquarters,true,",
		"WH1,Warehouse East,false,NOPE",
		"WH2,,false,HQ",
	}, "\n")

	res, err := f.im.ImportCustomers(context.Background(), operator(), "company-1", strings.NewReader(csvData))
	require.NoError(t, err, "row failures never abort the import")
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 3, res.Errors[0].Line)
	assert.Contains(t, res.Errors[0].Message, "unknown center")
	assert.Equal(t, 4, res.Errors[1].Line)
	assert.Contains(t, res.Errors[1].Message, "center_name")
}

func TestImportCustomersMissingColumn(t *testing.T) {
	f := newFixture()

	_, err := f.im.ImportCustomers(context.Background(), operator(), "company-1",
		strings.NewReader("center_code\nHQ\n"))
	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields[0].Message, "center_name")
}

func TestImportCustomersForbidden(t *testing.T) {
	f := newFixture()

	admin := operator()
	admin.Role = entity.RoleCompanyAdmin
	admin.CompanyID = strPtr("company-1")

	_, err := f.im.ImportCustomers(context.Background(), admin, "company-1", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestImportCustomersUnknownCompany(t *testing.T) {
	f := newFixture()
	_, err := f.im.ImportCustomers(context.Background(), operator(), "company-9",
		strings.NewReader("center_code,center_name\n"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImportItems(t *testing.T) {
	f := newFixture()
	f.manufacturers.byCode["MFG-1"] = &entity.Manufacturer{ID: "manufacturer-1", Code: "MFG-1", Name: "Chairs Inc"}

	csvData := strings.Join([]string{
		"item_code,name,unit_price,cost_price,shipping_cost,co2_per_unit,manufacturer_code",
		"CHAIR-01,Office Chair,12000,8000,500,1.25,MFG-1",
		"DESK-01,Standing Desk,abc,,,,",
		"LAMP-01,Desk Lamp,3000,,,0.2,NOPE",
	}, "\n")

	res, err := f.im.ImportItems(context.Background(), operator(), "company-1", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 3, res.Errors[0].Line)
	assert.Contains(t, res.Errors[0].Message, "unit_price")
	assert.Equal(t, 4, res.Errors[1].Line)
	assert.Contains(t, res.Errors[1].Message, "unknown manufacturer")

	chair := f.items.byCode[custKey("company-1", "CHAIR-01")]
	require.NotNil(t, chair)
	assert.True(t, chair.UnitPrice.Equal(decimal.NewFromInt(12000)))
	assert.True(t, chair.CO2PerUnit.Equal(decimal.NewFromFloat(1.25)))
	require.NotNil(t, chair.ManufacturerID)
	assert.Equal(t, "manufacturer-1", *chair.ManufacturerID)
}

func TestImportItemsUpdatesExisting(t *testing.T) {
	f := newFixture()
	f.items.byCode[custKey("company-1", "CHAIR-01")] = &entity.Item{
		ID: "item-1", CompanyID: "company-1", ItemCode: "CHAIR-01",
		Name: "Office Chair", UnitPrice: decimal.NewFromInt(12000), IsActive: true,
	}

	csvData := "item_code,name,unit_price\nCHAIR-01,Office Chair v2,13000\n"
	res, err := f.im.ImportItems(context.Background(), operator(), "company-1", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)

	got := f.items.byCode[custKey("company-1", "CHAIR-01")]
	assert.Equal(t, "item-1", got.ID, "identity survives the price change")
	assert.Equal(t, "Office Chair v2", got.Name)
	assert.True(t, got.UnitPrice.Equal(decimal.NewFromInt(13000)))
}

func TestImportAssignments(t *testing.T) {
	f := newFixture()
	f.customers.byCode[custKey("company-1", "HQ")] = &entity.Customer{
		ID: "customer-hq", CompanyID: "company-1",
		CenterCode: "HQ", CenterName: "Headquarters",
		IsBillingCenter: true, IsActive: true,
	}
	f.customers.byCode[custKey("company-1", "WH1")] = &entity.Customer{
		ID: "customer-wh", CompanyID: "company-1",
		CenterCode: "WH1", CenterName: "Warehouse East",
		BillingCenterID: strPtr("customer-hq"), IsActive: true,
	}
	f.profiles.byEmail["approver@acme.example"] = &entity.UserProfile{
		ID: "profile-approver", UserID: "user-approver",
		CompanyID: strPtr("company-1"), Role: entity.RoleApprover,
		MemberStatus: entity.MemberActive,
	}
	f.profiles.byEmail["member@acme.example"] = &entity.UserProfile{
		ID: "profile-member", UserID: "user-member",
		CompanyID: strPtr("company-1"), Role: entity.RoleNormal,
		MemberStatus: entity.MemberActive,
	}

	csvData := strings.Join([]string{
		"center_code,approver_email,member_email",
		"WH1,approver@acme.example,",
		"HQ,,member@acme.example",
		"WH1,,member@acme.example",
	}, "\n")

	res, err := f.im.ImportAssignments(context.Background(), operator(), "company-1", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, res.UpdatedCenters)
	assert.Equal(t, 1, res.UpdatedMembers)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 4, res.Errors[0].Line)
	assert.Contains(t, res.Errors[0].Message, "not a billing center")

	wh := f.customers.byCode[custKey("company-1", "WH1")]
	require.NotNil(t, wh.ApproverUserProfileID)
	assert.Equal(t, "profile-approver", *wh.ApproverUserProfileID)

	require.Len(t, f.profiles.updated, 1)
	require.NotNil(t, f.profiles.updated[0].BillingCenterID)
	assert.Equal(t, "customer-hq", *f.profiles.updated[0].BillingCenterID)
}

func TestImportAssignmentsUnknownMember(t *testing.T) {
	f := newFixture()
	f.customers.byCode[custKey("company-1", "HQ")] = &entity.Customer{
		ID: "customer-hq", CompanyID: "company-1",
		CenterCode: "HQ", CenterName: "Headquarters",
		IsBillingCenter: true, IsActive: true,
	}

	csvData := "center_code,approver_email,member_email\nHQ,,ghost@acme.example\n"
	res, err := f.im.ImportAssignments(context.Background(), operator(), "company-1", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 0, res.UpdatedMembers)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "unknown member")
}
