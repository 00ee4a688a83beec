package db

import "gorm.io/gorm"

func openForTest(dialector gorm.Dialector) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return nil, err
	}
	return gdb, nil
}
