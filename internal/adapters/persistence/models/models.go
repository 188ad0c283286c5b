package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Staff Tables
// ============================================================

// Staff represents the m_staff table. One row per authenticatable
// principal across all three role tiers.
//
// Credential staging invariant: either PendingPassword and
// VerificationToken are both NULL (no change in flight), or both are
// set with EmailVerified=false. The two staging columns are only ever
// written together.
type Staff struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	StaffName         string         `gorm:"size:100;not null" json:"staff_name"`
	StaffKana         string         `gorm:"size:100" json:"staff_kana"`
	EmployeeCode      string         `gorm:"size:20" json:"employee_code"`
	Email             string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	LoginID           string         `gorm:"uniqueIndex;size:50;not null" json:"login_id"`
	Password          string         `gorm:"size:255;not null" json:"-"`
	PendingPassword   *string        `gorm:"size:255" json:"-"`
	VerificationToken *string        `gorm:"size:512" json:"-"`
	EmailVerified     bool           `gorm:"default:false" json:"email_verified"`
	Tel1              string         `gorm:"column:tel_1;size:20" json:"tel_1"`
	CompanyName       string         `gorm:"size:100;index" json:"company_name"`
	Role              string         `gorm:"size:20;not null;default:'staff_user'" json:"role"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DelFlg            gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Staff) TableName() string {
	return "m_staff"
}

// HasPendingChange reports whether a credential change is staged
func (s *Staff) HasPendingChange() bool {
	return s.PendingPassword != nil && s.VerificationToken != nil
}

// StaffResponse DTO (no secret columns)
type StaffResponse struct {
	ID            uint      `json:"id"`
	StaffName     string    `json:"staff_name"`
	StaffKana     string    `json:"staff_kana"`
	EmployeeCode  string    `json:"employee_code"`
	Email         string    `json:"email"`
	LoginID       string    `json:"login_id"`
	Tel1          string    `json:"tel_1"`
	CompanyName   string    `json:"company_name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *Staff) ToResponse() *StaffResponse {
	return &StaffResponse{
		ID:            s.ID,
		StaffName:     s.StaffName,
		StaffKana:     s.StaffKana,
		EmployeeCode:  s.EmployeeCode,
		Email:         s.Email,
		LoginID:       s.LoginID,
		Tel1:          s.Tel1,
		CompanyName:   s.CompanyName,
		Role:          s.Role,
		EmailVerified: s.EmailVerified,
		CreatedAt:     s.CreatedAt,
	}
}

// ============================================================
// Construction Tables
// ============================================================

// Matter represents the t_matter table: one registered property
// with its maintenance inspection schedule.
type Matter struct {
	ID                       uint           `gorm:"primaryKey" json:"id"`
	MatterNo                 string         `gorm:"uniqueIndex;size:30;not null" json:"matter_no"`
	MatterName               string         `gorm:"size:200;not null" json:"matter_name"`
	OwnerName                string         `gorm:"size:100" json:"owner_name"`
	ArchitectureType         string         `gorm:"size:50" json:"architecture_type"`
	Address                  string         `gorm:"size:255" json:"address"`
	Telephone                string         `gorm:"size:20" json:"telephone"`
	Email                    string         `gorm:"size:100" json:"email"`
	CompanyName              string         `gorm:"size:100;index" json:"company_name"`
	DeliveryExpectedDate     *time.Time     `json:"delivery_expected_date"`
	SixMonths                bool           `gorm:"default:false" json:"six_months"`
	OneYear                  bool           `gorm:"default:false" json:"one_year"`
	ThreeYears               bool           `gorm:"default:false" json:"three_years"`
	TenYears                 bool           `gorm:"default:false" json:"ten_years"`
	SixMonthsSentAt          *time.Time     `json:"-"`
	OneYearSentAt            *time.Time     `json:"-"`
	ThreeYearsSentAt         *time.Time     `json:"-"`
	TenYearsSentAt           *time.Time     `json:"-"`
	Period                   string         `gorm:"size:255" json:"period"`
	ConfirmationNotification bool           `gorm:"default:false" json:"confirmation_notification"`
	CreatedAt                time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt                gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Matter) TableName() string {
	return "t_matter"
}

// Homeowner represents the homeowners table
type Homeowner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Email     string    `gorm:"size:100" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Homeowner) TableName() string {
	return "homeowners"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Staff{},
		&Matter{},
		&Homeowner{},
	)
}
