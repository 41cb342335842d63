package importer

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

var customerColumns = []string{"center_code", "center_name"}

// ImportCustomers upserts centers by center_code. Billing centers must
// appear before the receiving centers referencing them, unless they already
// exist.
//
// Columns: center_code, center_name, postal_code, prefecture, city,
// address1, address2, is_billing_center, billing_center_code.
func (im *Importer) ImportCustomers(ctx context.Context, p policy.Principal, companyID string, r io.Reader) (*dto.ImportResult, error) {
	if !(policy.CustomerPolicy{}).CanImport(p) {
		return nil, domain.ErrForbidden
	}
	company, err := im.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := readRows(r, customerColumns)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{}
	for _, row := range rows {
		created, err := im.upsertCustomer(ctx, companyID, row.fields)
		if err != nil {
			rowError(&result.Errors, row.line, err)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	im.log.Info().
		Str("company_id", companyID).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", len(result.Errors)).
		Msg("customer import finished")
	return result, nil
}

func (im *Importer) upsertCustomer(ctx context.Context, companyID string, f map[string]string) (bool, error) {
	code := f["center_code"]
	existing, err := im.customers.GetByCode(ctx, companyID, code)
	if err != nil {
		return false, err
	}

	var billingCenterID *string
	if bc := f["billing_center_code"]; bc != "" {
		billing, err := im.customers.GetByCode(ctx, companyID, bc)
		if err != nil {
			return false, err
		}
		if billing == nil {
			var ve domain.ValidationError
			ve.Add("billing_center_code", "unknown center: "+bc)
			return false, ve.ErrOrNil()
		}
		billingCenterID = &billing.ID
	}

	now := time.Now()
	c := existing
	created := c == nil
	if created {
		c = &entity.Customer{
			ID:         uuid.New().String(),
			CompanyID:  companyID,
			CenterCode: code,
			IsActive:   true,
			CreatedAt:  now,
		}
	}
	c.CenterName = f["center_name"]
	c.PostalCode = f["postal_code"]
	c.Prefecture = f["prefecture"]
	c.City = f["city"]
	c.Address1 = f["address1"]
	c.Address2 = f["address2"]
	c.IsBillingCenter = parseBool(f["is_billing_center"])
	c.BillingCenterID = billingCenterID
	c.UpdatedAt = now

	if err := c.Validate(); err != nil {
		return false, err
	}
	if billingCenterID != nil {
		billing, err := im.customers.GetByID(ctx, tenant.ScopeCompany(companyID), *billingCenterID)
		if err != nil {
			return false, err
		}
		if err := c.ValidateBillingCenter(billing); err != nil {
			return false, err
		}
	}
	if created {
		return true, im.customers.Create(ctx, c)
	}
	return false, im.customers.Update(ctx, c)
}
