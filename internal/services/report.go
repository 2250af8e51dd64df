package services

import (
	"context"
	"sort"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/repositories"

	"go.uber.org/zap"
)

const unknownHospital = "Unknown"

// ReportService computes the by-hospital aggregations. Everything here is a
// stateless in-memory fold over the issues-with-details rows, recomputed on
// every call.
type ReportService struct {
	issueRepository repositories.IssueRepositoryInterface
	logger          *zap.Logger
}

func NewReportService(issueRepository repositories.IssueRepositoryInterface, logger *zap.Logger) *ReportService {
	return &ReportService{
		issueRepository: issueRepository,
		logger:          logger,
	}
}

// GetIssuesReport returns the raw report rows, hospital ascending then
// severity descending.
func (s *ReportService) GetIssuesReport(ctx context.Context) ([]dto.IssueDetailsDTO, error) {
	return s.issueRepository.GetIssuesWithDetails(ctx)
}

// GetIssueStatsByHospital folds every issue into per-hospital counters. An
// issue whose equipment has no hospital lands under "Unknown".
func (s *ReportService) GetIssueStatsByHospital(ctx context.Context) (map[string]dto.HospitalIssueStatsDTO, error) {
	issues, err := s.issueRepository.GetIssuesWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	return FoldIssueStats(issues), nil
}

// FoldIssueStats is the aggregation itself, separated out so it can be
// exercised without a database.
func FoldIssueStats(issues []dto.IssueDetailsDTO) map[string]dto.HospitalIssueStatsDTO {
	stats := make(map[string]dto.HospitalIssueStatsDTO)
	for _, issue := range issues {
		hospital := unknownHospital
		if issue.HospitalName != nil && *issue.HospitalName != "" {
			hospital = *issue.HospitalName
		}

		entry := stats[hospital]
		entry.Total++
		switch {
		case issue.Status.IsOpen():
			entry.Open++
		case issue.Status == dto.IssueResolved:
			entry.Resolved++
		case issue.Status == dto.IssueClosed:
			entry.Closed++
		}
		switch issue.Severity {
		case dto.SeverityCritical:
			entry.Critical++
		case dto.SeverityMajor:
			entry.Major++
		case dto.SeverityModerate:
			entry.Moderate++
		case dto.SeverityMinor:
			entry.Minor++
		}
		stats[hospital] = entry
	}
	return stats
}

// HospitalOpenIssuesDTO groups a hospital's open issues for the dashboard.
type HospitalOpenIssuesDTO struct {
	Hospital string                `json:"hospital"`
	Issues   []dto.IssueDetailsDTO `json:"issues"`
}

// GetOpenIssuesByHospital groups open issues by hospital, hospitals in
// alphabetical order, issues most severe first.
func (s *ReportService) GetOpenIssuesByHospital(ctx context.Context) ([]HospitalOpenIssuesDTO, error) {
	issues, err := s.issueRepository.GetOpenIssues(ctx)
	if err != nil {
		return nil, err
	}
	return GroupOpenIssues(issues), nil
}

func GroupOpenIssues(issues []dto.IssueDetailsDTO) []HospitalOpenIssuesDTO {
	byHospital := make(map[string][]dto.IssueDetailsDTO)
	for _, issue := range issues {
		hospital := unknownHospital
		if issue.HospitalName != nil && *issue.HospitalName != "" {
			hospital = *issue.HospitalName
		}
		byHospital[hospital] = append(byHospital[hospital], issue)
	}

	names := make([]string, 0, len(byHospital))
	for name := range byHospital {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]HospitalOpenIssuesDTO, 0, len(names))
	for _, name := range names {
		group := byHospital[name]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Severity.Rank() > group[j].Severity.Rank()
		})
		groups = append(groups, HospitalOpenIssuesDTO{Hospital: name, Issues: group})
	}
	return groups
}
