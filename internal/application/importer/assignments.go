package importer

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

var assignmentColumns = []string{"center_code"}

// ImportAssignments binds people to centers in bulk. Each row names a
// center; approver_email configures the center's order approver,
// member_email binds that member's billing center to the row's center (which
// must be a billing center).
//
// Columns: center_code, approver_email, member_email.
func (im *Importer) ImportAssignments(ctx context.Context, p policy.Principal, companyID string, r io.Reader) (*dto.AssignmentImportResult, error) {
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
	rows, err := readRows(r, assignmentColumns)
	if err != nil {
		return nil, err
	}

	result := &dto.AssignmentImportResult{}
	for _, row := range rows {
		centers, members, err := im.applyAssignment(ctx, companyID, row.fields)
		if err != nil {
			rowError(&result.Errors, row.line, err)
			continue
		}
		result.UpdatedCenters += centers
		result.UpdatedMembers += members
	}
	im.log.Info().
		Str("company_id", companyID).
		Int("updated_centers", result.UpdatedCenters).
		Int("updated_members", result.UpdatedMembers).
		Int("failed", len(result.Errors)).
		Msg("assignment import finished")
	return result, nil
}

func (im *Importer) applyAssignment(ctx context.Context, companyID string, f map[string]string) (centers, members int, err error) {
	scope := tenant.ScopeCompany(companyID)
	center, err := im.customers.GetByCode(ctx, companyID, f["center_code"])
	if err != nil {
		return 0, 0, err
	}
	if center == nil {
		var ve domain.ValidationError
		ve.Add("center_code", "unknown center: "+f["center_code"])
		return 0, 0, ve.ErrOrNil()
	}

	if email := strings.ToLower(f["approver_email"]); email != "" {
		approver, err := im.companyMember(ctx, scope, companyID, email, "approver_email")
		if err != nil {
			return centers, members, err
		}
		center.ApproverUserProfileID = &approver.ID
		center.UpdatedAt = time.Now()
		if err := im.customers.Update(ctx, center); err != nil {
			return centers, members, err
		}
		centers++
	}

	if email := strings.ToLower(f["member_email"]); email != "" {
		if !center.IsBillingCenter {
			var ve domain.ValidationError
			ve.Add("member_email", "center is not a billing center")
			return centers, members, ve.ErrOrNil()
		}
		member, err := im.companyMember(ctx, scope, companyID, email, "member_email")
		if err != nil {
			return centers, members, err
		}
		member.BillingCenterID = &center.ID
		member.UpdatedAt = time.Now()
		if err := im.profiles.Update(ctx, member); err != nil {
			return centers, members, err
		}
		members++
	}
	return centers, members, nil
}

func (im *Importer) companyMember(ctx context.Context, scope tenant.Scope, companyID, email, field string) (*entity.UserProfile, error) {
	profile, err := im.profiles.GetByUserEmail(ctx, scope, email)
	if err != nil {
		return nil, err
	}
	var ve domain.ValidationError
	if profile == nil {
		ve.Add(field, "unknown member: "+email)
		return nil, ve.ErrOrNil()
	}
	if profile.CompanyID == nil || *profile.CompanyID != companyID || !profile.Active() {
		ve.Add(field, "must be an active member of the company")
		return nil, ve.ErrOrNil()
	}
	return profile, nil
}
