package domain

import (
	"fmt"
	"strings"
)

// ManagerRef identifies one sales manager in both identifier spaces the CRM
// uses: clients and tasks reference managers by display name, orders by the
// numeric CRM id. Callers need both to join the aggregates back together.
type ManagerRef struct {
	Name  string `json:"name"`
	CRMID string `json:"crm_id"`
}

// ParseManagerList builds the manager registry from its configuration form,
// one "Display Name:crm_id" entry per element. The registry is static
// configuration, not runtime data: any malformed or empty entry is a hard
// error and the process should not start.
func ParseManagerList(entries []string) ([]ManagerRef, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("manager registry is empty")
	}

	managers := make([]ManagerRef, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		idx := strings.LastIndex(entry, ":")
		if idx <= 0 || idx == len(entry)-1 {
			return nil, fmt.Errorf("malformed manager entry %q, want \"Name:crm_id\"", entry)
		}
		ref := ManagerRef{
			Name:  strings.TrimSpace(entry[:idx]),
			CRMID: strings.TrimSpace(entry[idx+1:]),
		}
		if ref.Name == "" || ref.CRMID == "" {
			return nil, fmt.Errorf("manager entry %q has an empty name or crm_id", entry)
		}
		if seen[ref.Name] {
			return nil, fmt.Errorf("duplicate manager %q in registry", ref.Name)
		}
		seen[ref.Name] = true
		managers = append(managers, ref)
	}

	return managers, nil
}
