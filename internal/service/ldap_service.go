package service

import (
	"fmt"

	"github.com/go-ldap/ldap/v3"

	"agency-hub/internal/pkg/config"
	pkgErrors "agency-hub/pkg/errors"
)

// LDAPIdentity directory attributes of an authenticated user
type LDAPIdentity struct {
	Email string
	Name  string
}

type LDAPService interface {
	Authenticate(email, password string) (*LDAPIdentity, error)
}

type ldapService struct {
	cfg *config.LDAPConfig
}

func NewLDAPService(cfg *config.LDAPConfig) LDAPService {
	return &ldapService{
		cfg: cfg,
	}
}

func (s *ldapService) Authenticate(email, password string) (*LDAPIdentity, error) {
	if !s.cfg.Enabled {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "ldap authentication is disabled")
	}
	// an empty password turns the bind into an unauthenticated bind, which most servers accept
	if password == "" {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	conn, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	userDN, attributes, err := s.searchUser(conn, email)
	if err != nil {
		return nil, err
	}

	if err := conn.Bind(userDN, password); err != nil {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	identity := &LDAPIdentity{
		Email: attributes[s.cfg.Attributes.Email],
		Name:  attributes[s.cfg.Attributes.DisplayName],
	}
	if identity.Email == "" {
		identity.Email = email
	}
	if identity.Name == "" {
		identity.Name = identity.Email
	}

	return identity, nil
}

func (s *ldapService) connect() (*ldap.Conn, error) {
	scheme := "ldap"
	if s.cfg.UseSSL {
		scheme = "ldaps"
	}

	conn, err := ldap.DialURL(fmt.Sprintf("%s://%s:%d", scheme, s.cfg.Host, s.cfg.Port))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadGateway, "ldap connection failed", err)
	}

	// service account bind for the search
	if err := conn.Bind(s.cfg.BindDN, s.cfg.BindPassword); err != nil {
		conn.Close()
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadGateway, "ldap bind failed", err)
	}

	return conn, nil
}

func (s *ldapService) searchUser(conn *ldap.Conn, email string) (string, map[string]string, error) {
	filter := fmt.Sprintf(s.cfg.UserFilter, ldap.EscapeFilter(email))

	searchRequest := ldap.NewSearchRequest(
		s.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		0,
		false,
		filter,
		[]string{s.cfg.Attributes.Email, s.cfg.Attributes.DisplayName},
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		return "", nil, pkgErrors.Wrap(pkgErrors.CodeBadGateway, "ldap search failed", err)
	}

	// unknown and ambiguous users look like a bad password to the caller
	if len(result.Entries) != 1 {
		return "", nil, pkgErrors.ErrInvalidCredentials
	}

	entry := result.Entries[0]
	attributes := map[string]string{
		s.cfg.Attributes.Email:       entry.GetAttributeValue(s.cfg.Attributes.Email),
		s.cfg.Attributes.DisplayName: entry.GetAttributeValue(s.cfg.Attributes.DisplayName),
	}

	return entry.DN, attributes, nil
}
