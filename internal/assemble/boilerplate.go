// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

// Preamble is the fixed LaTeX document preamble: page geometry, fonts,
// framed footnote boxes, hyperlink setup, and heading styles. hyperref is
// loaded last to avoid package conflicts.
const Preamble = `\documentclass[12pt,article]{article}
\usepackage{geometry}
\geometry{margin=1in}
\usepackage{titlesec}
\usepackage{xcolor}
\usepackage{fancyhdr}
\usepackage{fontspec}
\setmainfont[Path=./fonts/,UprightFont=EBGaramond12-Regular.otf,ItalicFont=EBGaramond12-Italic.otf]{EB Garamond}
\usepackage{setspace}
\onehalfspacing
\usepackage{mdframed}
\usepackage{multicol}
\usepackage{enumitem}
\usepackage{bookmark}
\usepackage{tocloft}
\setlength{\cftbeforesecskip}{10pt}
\renewcommand{\cftsecfont}{\bfseries}
\usepackage{hyperref}
\hypersetup{
  colorlinks=true,
  linkcolor=blue,
  urlcolor=blue,
  citecolor=blue,
  linktoc=all,
  bookmarksnumbered=true,
  bookmarksopen=true
}
\setcounter{secnumdepth}{0}
\titleformat{\section}{\LARGE\bfseries\color[RGB]{231, 76, 60}}{\thesection}{1em}{}
\titleformat{\subsection}{\Large\bfseries\color{black}}{\thesubsection}{1em}{}
\pagestyle{fancy}
\fancyhead[R]{Orthodox Catechism}
\fancyhead[L]{\thepage}
\fancyfoot{}
`

const documentStart = `\begin{document}

\title{Orthodox Catechism}
\maketitle
\tableofcontents
\newpage

`

const documentEnd = "\\end{document}\n"
