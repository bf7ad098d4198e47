// Package models contains the GORM persistence models. Domain entities stay
// free of ORM tags; each model converts with ToDomain / FromDomain.
//
// UUID columns are declared char(36) so AutoMigrate works on MySQL and
// SQLite. On PostgreSQL the schema comes from the SQL migrations instead,
// where the same columns are native uuid.
package models
