package main

import "testing"

func TestFetchJobs(t *testing.T) {
	tests := []struct {
		mode    string
		jobs    int
		want    int
		wantErr bool
	}{
		{mode: "sequential", jobs: 0, want: 1},
		{mode: "sequential", jobs: 8, want: 1},
		{mode: "parallel", jobs: 8, want: 8},
		{mode: "parallel", jobs: 0, want: 4},
		{mode: "", wantErr: true},
		{mode: "both", wantErr: true},
		{mode: "Sequential", wantErr: true},
	}

	for _, tt := range tests {
		got, err := fetchJobs(tt.mode, tt.jobs)
		if tt.wantErr {
			if err == nil {
				t.Errorf("fetchJobs(%q, %d): expected error", tt.mode, tt.jobs)
			}
			continue
		}
		if err != nil {
			t.Errorf("fetchJobs(%q, %d): unexpected error: %v", tt.mode, tt.jobs, err)
			continue
		}
		if got != tt.want {
			t.Errorf("fetchJobs(%q, %d) = %d, want %d", tt.mode, tt.jobs, got, tt.want)
		}
	}
}
