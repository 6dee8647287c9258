package infra

import (
	"fmt"

	"github.com/casbin/casbin/v2"
)

// NewEnforcer memuat model RBAC dari file conf. Policy tidak ikut dimuat
// di sini; rbac.Service mengisinya per company dari database.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	e, err := casbin.NewEnforcer(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load rbac model %s: %w", modelPath, err)
	}
	return e, nil
}
