// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// AdminAccountTable represents the 'formulary.admin_account' table.
type AdminAccountTable struct {
	Table        string
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    string
}

// AdminAccount is the schema definition for formulary.admin_account.
var AdminAccount = AdminAccountTable{
	Table:        "formulary.admin_account",
	ID:           "id",
	Email:        "email",
	PasswordHash: "password_hash",
	Role:         "role",
	CreatedAt:    "created_at",
}

func (t AdminAccountTable) Columns() []string {
	return []string{t.ID, t.Email, t.PasswordHash, t.Role, t.CreatedAt}
}
