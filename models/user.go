package models

// User 用户表
type User struct {
	ID       int    `gorm:"primary_key;auto_increment" json:"id"`
	Username string `gorm:"type:varchar(255);unique;not null" json:"username"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Identity string `gorm:"type:varchar(255);not null" json:"identity"` // manager, staff
}
