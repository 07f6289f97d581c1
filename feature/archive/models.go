package archive

import "time"

// FolderRow is one node of the archive folder tree. Top-level folders
// have a nil ParentID. Names are unique among siblings.
type FolderRow struct {
	ID       uint   `gorm:"primaryKey"`
	ParentID *uint  `gorm:"index:idx_folder_parent_name,unique"`
	Name     string `gorm:"size:255;index:idx_folder_parent_name,unique"`
}

// TableName maps FolderRow to the folders table.
func (FolderRow) TableName() string { return "folders" }

// MessageRow is one archived message with its indexed metadata and raw
// content.
type MessageRow struct {
	ID         uint `gorm:"primaryKey"`
	FolderID   uint `gorm:"index"`
	Subject    string `gorm:"size:998"`
	Sender     string `gorm:"size:320"`
	SenderName string `gorm:"size:255"`
	ReceivedAt *time.Time
	Size       int64
	Raw        []byte `gorm:"type:blob"`
}

// TableName maps MessageRow to the messages table.
func (MessageRow) TableName() string { return "messages" }
