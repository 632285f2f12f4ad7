package department

// Office classifications mirroring the organizational hierarchy.
const (
	OfficeTypeDirectorate      = "directorate"
	OfficeTypeProvince         = "province"
	OfficeTypeProvinceDivision = "province_division"
	OfficeTypeDivision         = "division"
	OfficeTypeOther            = "other"
)

type Department struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"column:name;uniqueIndex;not null"`
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	Email        string `gorm:"column:email"`
	PhoneNumber  string `gorm:"column:phone_number"`
	Fax          string `gorm:"column:fax"`
	ParentID     *int64 `gorm:"column:parent_office_id"`
	OfficeType   string `gorm:"column:office_type;default:other"`
	Province     string `gorm:"column:province"`
	District     string `gorm:"column:district"`
	Address      string `gorm:"column:address"`
	PhotoURL     string `gorm:"column:photo_url"`
	HeadUserID   *int64 `gorm:"column:head_user_id"`
}

func (Department) TableName() string {
	return "departments"
}
