package repositories

import (
	"context"
	"database/sql"

	intdb "opticrm/internal/db"
	"opticrm/internal/domain"
	"opticrm/internal/domain/models"
	"opticrm/internal/query"
)

const customerColumns = `id, organization_id, first_name, last_name, email, phone, mobile, date_of_birth,
	address_street, address_city, address_postal_code, address_country,
	insurance_provider, insurance_type, insurance_number,
	last_exam_date, next_appointment,
	prescription_sphere_right, prescription_sphere_left, prescription_cylinder_right, prescription_cylinder_left,
	prescription_axis_right, prescription_axis_left, prescription_addition, prescription_pd,
	allergies, medical_notes, frame_preferences, contact_preference,
	status, created_at, updated_at`

var CustomerSorts = query.NewSortFields("created_at",
	"created_at", "last_name", "first_name", "last_exam_date", "next_appointment")

var customerSearchFields = []string{"first_name", "last_name", "email"}

type CustomerRepository struct {
	DB *sql.DB
}

// CustomerListSpec builds the list pipeline input for customers.
func CustomerListSpec(orgID int64, f models.CustomerFilter, p models.ListParams) query.Spec {
	filters := query.NewBuilder().
		Eq("organization_id", orgID).
		Search(f.Search, customerSearchFields...).
		Eq("status", f.Status).
		Eq("insurance_type", f.InsuranceType).
		Build()
	return listSpec(filters, CustomerSorts, p.SortBy, p.SortOrder, p.Page, p.PerPage)
}

func (r CustomerRepository) List(ctx context.Context, orgID int64, f models.CustomerFilter, p models.ListParams) (query.PageResult[models.Customer], error) {
	src := listSource[models.Customer]{
		from:    "customers",
		columns: customerColumns,
		scan:    scanCustomer,
	}
	return runList(ctx, r.DB, src, CustomerListSpec(orgID, f, p))
}

// Get returns sql.ErrNoRows when the customer is not in the organization.
func (r CustomerRepository) Get(ctx context.Context, orgID, id int64) (models.Customer, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE id = ? AND organization_id = ?", id, orgID)
	return scanCustomer(row)
}

func (r CustomerRepository) Exists(ctx context.Context, orgID, id int64) (bool, error) {
	return rowExists(ctx, r.DB, "SELECT 1 FROM customers WHERE id = ? AND organization_id = ? LIMIT 1", id, orgID)
}

func (r CustomerRepository) Create(ctx context.Context, orgID int64, ch intdb.Changes) (models.Customer, error) {
	ch.Set("organization_id", orgID)
	id, err := insertRow(ctx, r.DB, "customers", ch)
	if err != nil {
		return models.Customer{}, err
	}
	return r.Get(ctx, orgID, id)
}

func (r CustomerRepository) Update(ctx context.Context, orgID, id int64, ch intdb.Changes) (models.Customer, error) {
	if err := updateRow(ctx, r.DB, "customers", ch, true, "id = ? AND organization_id = ?", id, orgID); err != nil {
		return models.Customer{}, err
	}
	return r.Get(ctx, orgID, id)
}

func scanCustomer(rs intdb.RowScanner) (models.Customer, error) {
	var (
		c                                    models.Customer
		email, phone, mobile                 sql.NullString
		street, city, postal, country        sql.NullString
		provider, insType, insNumber         sql.NullString
		allergies, medical, frames, contact  sql.NullString
		dob, lastExam                        sql.Null[domain.Date]
		nextAppt                             sql.NullTime
		sphR, sphL, cylR, cylL, addition, pd sql.NullFloat64
		axisR, axisL                         sql.NullInt64
		status                               string
	)
	err := rs.Scan(
		&c.ID, &c.OrganizationID, &c.FirstName, &c.LastName, &email, &phone, &mobile, &dob,
		&street, &city, &postal, &country,
		&provider, &insType, &insNumber,
		&lastExam, &nextAppt,
		&sphR, &sphL, &cylR, &cylL,
		&axisR, &axisL, &addition, &pd,
		&allergies, &medical, &frames, &contact,
		&status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return models.Customer{}, err
	}

	c.Email = intdb.StringPtr(email)
	c.Phone = intdb.StringPtr(phone)
	c.Mobile = intdb.StringPtr(mobile)
	c.DateOfBirth = intdb.NullPtr(dob)
	c.AddressStreet = intdb.StringPtr(street)
	c.AddressCity = intdb.StringPtr(city)
	c.AddressPostalCode = intdb.StringPtr(postal)
	c.AddressCountry = intdb.StringPtr(country)
	c.InsuranceProvider = intdb.StringPtr(provider)
	if insType.Valid {
		t := models.InsuranceType(insType.String)
		c.InsuranceType = &t
	}
	c.InsuranceNumber = intdb.StringPtr(insNumber)
	c.LastExamDate = intdb.NullPtr(lastExam)
	c.NextAppointment = intdb.TimePtr(nextAppt)
	c.PrescriptionSphereRight = intdb.Float64Ptr(sphR)
	c.PrescriptionSphereLeft = intdb.Float64Ptr(sphL)
	c.PrescriptionCylinderRight = intdb.Float64Ptr(cylR)
	c.PrescriptionCylinderLeft = intdb.Float64Ptr(cylL)
	c.PrescriptionAxisRight = intdb.IntPtr(axisR)
	c.PrescriptionAxisLeft = intdb.IntPtr(axisL)
	c.PrescriptionAddition = intdb.Float64Ptr(addition)
	c.PrescriptionPD = intdb.Float64Ptr(pd)
	c.Allergies = intdb.StringPtr(allergies)
	c.MedicalNotes = intdb.StringPtr(medical)
	c.FramePreferences = intdb.StringPtr(frames)
	c.ContactPreference = intdb.StringPtr(contact)
	c.Status = models.CustomerStatus(status)
	return c, nil
}
