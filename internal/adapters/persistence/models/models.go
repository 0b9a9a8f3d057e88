package models

import (
	"strconv"
	"time"

	"pustakahub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth tables
// ============================================================

// User represents users table (librarian accounts)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'LIBRARIAN'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Library tables
// ============================================================

// Member represents members table. The display member number is the
// auto-increment ID rendered as a string; it is never reused, even after a
// member row is deleted.
type Member struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	IdentityNumber   string     `gorm:"size:50;not null" json:"identity_number"`
	IdentityType     string     `gorm:"size:10;not null" json:"identity_type"` // NIM, KTP, SIM
	FullName         string     `gorm:"size:100;not null" json:"full_name"`
	BirthDate        *time.Time `json:"birth_date"`
	Class            string     `gorm:"size:50" json:"class"`
	Address          string     `gorm:"type:text" json:"address"`
	Phone            string     `gorm:"size:30" json:"phone"`
	RegistrationDate time.Time  `gorm:"autoCreateTime" json:"registration_date"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// MemberNumber returns the display number for this member
func (m *Member) MemberNumber() string {
	return strconv.FormatUint(uint64(m.ID), 10)
}

// MemberResponse DTO
type MemberResponse struct {
	ID               uint       `json:"id"`
	MemberNumber     string     `json:"member_number"`
	IdentityNumber   string     `json:"identity_number"`
	IdentityType     string     `json:"identity_type"`
	FullName         string     `json:"full_name"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`
	Class            string     `json:"class,omitempty"`
	Address          string     `json:"address,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	RegistrationDate time.Time  `json:"registration_date"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:               m.ID,
		MemberNumber:     m.MemberNumber(),
		IdentityNumber:   m.IdentityNumber,
		IdentityType:     m.IdentityType,
		FullName:         m.FullName,
		BirthDate:        m.BirthDate,
		Class:            m.Class,
		Address:          m.Address,
		Phone:            m.Phone,
		RegistrationDate: m.RegistrationDate,
	}
}

// Book represents books table. AvailableQuantity counts copies not currently
// on loan and is mutated only by the loan engine; catalog edits to Quantity
// do not reconcile it (librarians reconcile manually).
type Book struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Category          string    `gorm:"size:50;not null" json:"category"`
	Title             string    `gorm:"type:text;not null" json:"title"`
	Type              string    `gorm:"size:50;not null" json:"type"`
	Author            string    `gorm:"size:100;not null" json:"author"`
	Publisher         string    `gorm:"size:100;not null" json:"publisher"`
	PublishYear       int       `gorm:"not null" json:"publish_year"`
	EntryDate         time.Time `gorm:"autoCreateTime" json:"entry_date"`
	Quantity          int       `gorm:"not null;default:1" json:"quantity"`
	AvailableQuantity int       `gorm:"not null;default:1" json:"available_quantity"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// BookNumber returns the display number for this book
func (b *Book) BookNumber() string {
	return strconv.FormatUint(uint64(b.ID), 10)
}

// BookResponse DTO
type BookResponse struct {
	ID                uint      `json:"id"`
	BookNumber        string    `json:"book_number"`
	Category          string    `json:"category"`
	Title             string    `json:"title"`
	Type              string    `json:"type"`
	Author            string    `json:"author"`
	Publisher         string    `json:"publisher"`
	PublishYear       int       `json:"publish_year"`
	EntryDate         time.Time `json:"entry_date"`
	Quantity          int       `json:"quantity"`
	AvailableQuantity int       `json:"available_quantity"`
}

func (b *Book) ToResponse() *BookResponse {
	return &BookResponse{
		ID:                b.ID,
		BookNumber:        b.BookNumber(),
		Category:          b.Category,
		Title:             b.Title,
		Type:              b.Type,
		Author:            b.Author,
		Publisher:         b.Publisher,
		PublishYear:       b.PublishYear,
		EntryDate:         b.EntryDate,
		Quantity:          b.Quantity,
		AvailableQuantity: b.AvailableQuantity,
	}
}

// Loan represents loans table. Status holds only "active" or "returned";
// overdue is derived at read time and never persisted.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	MemberID   uint       `gorm:"index;not null" json:"member_id"`
	BookID     uint       `gorm:"index;not null" json:"book_id"`
	LoanDate   time.Time  `gorm:"not null" json:"loan_date"`
	DueDate    time.Time  `gorm:"not null" json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Fine       string     `gorm:"type:decimal(10,2);not null;default:0.00" json:"fine"`
	Status     string     `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Member     Member     `gorm:"foreignKey:MemberID" json:"-"`
	Book       Book       `gorm:"foreignKey:BookID" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}

// LoanNumber returns the display number for this loan
func (l *Loan) LoanNumber() string {
	return strconv.FormatUint(uint64(l.ID), 10)
}

// LoanResponse DTO with joined member and book
type LoanResponse struct {
	ID         uint            `json:"id"`
	LoanNumber string          `json:"loan_number"`
	MemberID   uint            `json:"member_id"`
	BookID     uint            `json:"book_id"`
	LoanDate   time.Time       `json:"loan_date"`
	DueDate    time.Time       `json:"due_date"`
	ReturnDate *time.Time      `json:"return_date,omitempty"`
	Fine       string          `json:"fine"`
	Status     string          `json:"status"`
	IsOverdue  bool            `json:"is_overdue"`
	Member     *MemberResponse `json:"member,omitempty"`
	Book       *BookResponse   `json:"book,omitempty"`
}

// ToResponse builds a loan DTO; IsOverdue is computed against now
func (l *Loan) ToResponse(now time.Time) *LoanResponse {
	resp := &LoanResponse{
		ID:         l.ID,
		LoanNumber: l.LoanNumber(),
		MemberID:   l.MemberID,
		BookID:     l.BookID,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Fine:       l.Fine,
		Status:     l.Status,
		IsOverdue:  domain.IsOverdue(l.Status, l.DueDate, now),
	}
	if l.Member.ID != 0 {
		resp.Member = l.Member.ToResponse()
	}
	if l.Book.ID != 0 {
		resp.Book = l.Book.ToResponse()
	}
	return resp
}

// Report represents reports table. Generation is status bookkeeping only;
// no document is rendered.
type Report struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ReportType  string     `gorm:"size:30;not null" json:"report_type"`
	Title       string     `gorm:"size:150;not null" json:"title"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	FilePath    string     `gorm:"size:255" json:"file_path,omitempty"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Member{},
		&Book{},
		&Loan{},
		&Report{},
	)
}
