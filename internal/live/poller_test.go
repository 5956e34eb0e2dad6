package live

import (
	"testing"

	domainIncident "cargo-inspection-dashboard/internal/domain/incident"
)

func keySet(pairs ...[2]string) map[domainIncident.Key]bool {
	keys := make(map[domainIncident.Key]bool, len(pairs))
	for _, p := range pairs {
		keys[domainIncident.Key{CargoID: p[0], StageName: p[1]}] = true
	}
	return keys
}

func TestQueueChanged(t *testing.T) {
	tests := []struct {
		name string
		last map[domainIncident.Key]bool
		next map[domainIncident.Key]bool
		want bool
	}{
		{
			name: "first poll always broadcasts",
			last: nil,
			next: keySet(),
			want: true,
		},
		{
			name: "same queue is quiet",
			last: keySet([2]string{"C-1", "Arrival"}),
			next: keySet([2]string{"C-1", "Arrival"}),
			want: false,
		},
		{
			name: "new incident",
			last: keySet([2]string{"C-1", "Arrival"}),
			next: keySet([2]string{"C-1", "Arrival"}, [2]string{"C-2", "Dispatch"}),
			want: true,
		},
		{
			name: "incident resolved",
			last: keySet([2]string{"C-1", "Arrival"}, [2]string{"C-2", "Dispatch"}),
			next: keySet([2]string{"C-1", "Arrival"}),
			want: true,
		},
		{
			name: "same cargo at a different stage",
			last: keySet([2]string{"C-1", "Arrival"}),
			next: keySet([2]string{"C-1", "Dispatch"}),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Poller{lastKeys: tt.last}
			if got := p.queueChanged(tt.next); got != tt.want {
				t.Errorf("queueChanged() = %v, want %v", got, tt.want)
			}
		})
	}
}
