// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// SetPasswordCheck swaps the bcrypt comparison so tests can observe it.
func (service *Service) SetPasswordCheck(check func(password, hash string) bool) {
	service.checkPassword = check
}
