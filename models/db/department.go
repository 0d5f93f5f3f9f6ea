package dbmodels

// Department подразделение из оргструктуры HuntFlow, хранится как nested set
type Department struct {
	ID       int     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ParentID *int    `gorm:"index" json:"parent_id"`
	Name     string  `gorm:"type:varchar(255)" json:"name"`
	Lft      int     `gorm:"column:_lft;index:idx_department_bounds" json:"lft"`
	Rgt      int     `gorm:"column:_rgt;index:idx_department_bounds" json:"rgt"`
	Foreign  string  `gorm:"type:varchar(255)" json:"foreign"`
	Removed  *string `json:"removed"`
	Active   bool    `json:"active"`
	Meta     string  `json:"meta"` // сырой json из HuntFlow
	Deep     int     `json:"deep"`
	Order    int     `gorm:"column:order" json:"order"`
}

func (Department) TableName() string {
	return "vacancy_departments"
}
