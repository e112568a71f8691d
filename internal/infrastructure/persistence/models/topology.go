package models

import (
	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/topology"
)

// WarehouseModel is the persistence model for a warehouse.
type WarehouseModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null"`
	Code    string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Address string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse.
func (m *WarehouseModel) ToDomain() *topology.Warehouse {
	return &topology.Warehouse{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Code:       m.Code,
		Address:    m.Address,
	}
}

// FromDomain populates the persistence model from a domain Warehouse.
func (m *WarehouseModel) FromDomain(w *topology.Warehouse) {
	m.FromDomainBaseEntity(w.BaseEntity)
	m.Name = w.Name
	m.Code = w.Code
	m.Address = w.Address
}

// DepartmentModel is the persistence model for a department.
type DepartmentModel struct {
	BaseModel
	Number            string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_department_warehouse_number,priority:2"`
	Name              string     `gorm:"type:varchar(255)"`
	RefrigerationMode *int       `gorm:""`
	WarehouseID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_department_warehouse_number,priority:1"`
	DefaultCellID     *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the persistence model to a domain Department.
func (m *DepartmentModel) ToDomain() *topology.Department {
	return &topology.Department{
		BaseEntity:        m.BaseModel.ToDomain(),
		Number:            m.Number,
		Name:              m.Name,
		RefrigerationMode: m.RefrigerationMode,
		WarehouseID:       m.WarehouseID,
		DefaultCellID:     m.DefaultCellID,
	}
}

// FromDomain populates the persistence model from a domain Department.
func (m *DepartmentModel) FromDomain(d *topology.Department) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.Number = d.Number
	m.Name = d.Name
	m.RefrigerationMode = d.RefrigerationMode
	m.WarehouseID = d.WarehouseID
	m.DefaultCellID = d.DefaultCellID
}

// RowModel is the persistence model for a storage row.
type RowModel struct {
	BaseModel
	Number       int       `gorm:"not null"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (RowModel) TableName() string {
	return "storage_rows"
}

// ToDomain converts the persistence model to a domain Row.
func (m *RowModel) ToDomain() *topology.Row {
	return &topology.Row{
		BaseEntity:   m.BaseModel.ToDomain(),
		Number:       m.Number,
		DepartmentID: m.DepartmentID,
	}
}

// FromDomain populates the persistence model from a domain Row.
func (m *RowModel) FromDomain(r *topology.Row) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Number = r.Number
	m.DepartmentID = r.DepartmentID
}

// SectionModel is the persistence model for a row section.
type SectionModel struct {
	BaseModel
	Number string    `gorm:"type:varchar(20);not null"`
	RowID  uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (SectionModel) TableName() string {
	return "storage_sections"
}

// ToDomain converts the persistence model to a domain Section.
func (m *SectionModel) ToDomain() *topology.Section {
	return &topology.Section{
		BaseEntity: m.BaseModel.ToDomain(),
		Number:     m.Number,
		RowID:      m.RowID,
	}
}

// FromDomain populates the persistence model from a domain Section.
func (m *SectionModel) FromDomain(s *topology.Section) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Number = s.Number
	m.RowID = s.RowID
}

// LevelModel is the persistence model for a shelf level.
type LevelModel struct {
	BaseModel
	Number    string    `gorm:"type:varchar(20);not null"`
	SectionID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (LevelModel) TableName() string {
	return "storage_levels"
}

// ToDomain converts the persistence model to a domain Level.
func (m *LevelModel) ToDomain() *topology.Level {
	return &topology.Level{
		BaseEntity: m.BaseModel.ToDomain(),
		Number:     m.Number,
		SectionID:  m.SectionID,
	}
}

// FromDomain populates the persistence model from a domain Level.
func (m *LevelModel) FromDomain(l *topology.Level) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.Number = l.Number
	m.SectionID = l.SectionID
}

// CellModel is the persistence model for a storage cell.
type CellModel struct {
	BaseModel
	Number  int        `gorm:"not null"`
	Barcode string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Type    int        `gorm:"not null;default:0"`
	LevelID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (CellModel) TableName() string {
	return "cells"
}

// ToDomain converts the persistence model to a domain Cell.
func (m *CellModel) ToDomain() *topology.Cell {
	return &topology.Cell{
		BaseEntity: m.BaseModel.ToDomain(),
		Number:     m.Number,
		Barcode:    m.Barcode,
		Type:       topology.CellType(m.Type),
		LevelID:    m.LevelID,
	}
}

// FromDomain populates the persistence model from a domain Cell.
func (m *CellModel) FromDomain(c *topology.Cell) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Number = c.Number
	m.Barcode = c.Barcode
	m.Type = int(c.Type)
	m.LevelID = c.LevelID
}
